package cli

import (
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/shutterflow/internal/cli/formatter"
	"github.com/alexanderramin/shutterflow/internal/compliance"
	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"p"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var (
		name, city string
		start, end *time.Time
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := app.Store.CreateProject(cmd.Context(), domain.ProjectInput{
				Name:      name,
				City:      city,
				StartDate: start,
				EndDate:   end,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&city, "city", "", "City")
	cmd.Flags().Var(dateValue{&start}, "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(dateValue{&end}, "end", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var favoritesOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects with their compliance rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			favs := app.Store.Favorites(ctx, domain.FavoriteProject)

			var rows []formatter.ProjectRow
			for _, p := range app.Store.GetProjects(ctx) {
				fav := slices.Contains(favs, p.ID)
				if favoritesOnly && !fav {
					continue
				}
				rows = append(rows, formatter.ProjectRow{
					Project:  p,
					Summary:  compliance.Summarize(p.AllShutters()),
					Favorite: fav,
				})
			}

			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&favoritesOnly, "favorites", false, "Only list favorite projects")

	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a project tree with compliance rollups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			status, err := app.Status.ProjectStatus(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectStatus(status))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var (
		name, city string
		start, end *time.Time
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update project fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !changed(flags, "name", "city", "start", "end") {
				return fmt.Errorf("nothing to update")
			}
			var patch domain.ProjectPatch
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("city") {
				patch.City = &city
			}
			patch.StartDate = start
			patch.EndDate = end

			p, ok := app.Store.UpdateProject(ctx, id, patch)
			if !ok {
				return fmt.Errorf("project not found: %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&city, "city", "", "City")
	cmd.Flags().Var(dateValue{&start}, "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(dateValue{&end}, "end", "End date (YYYY-MM-DD)")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a project and everything under it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, _ := app.Store.GetProject(ctx, id)
			if !app.Store.DeleteProject(ctx, id) {
				return fmt.Errorf("project not found: %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s\n", p.Name)
			return nil
		},
	}
}
