package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/shutterflow/internal/cli/formatter"
	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/spf13/cobra"
)

func newFavCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fav",
		Aliases: []string{"favorite"},
		Short:   "Manage favorite projects, buildings, zones and shutters",
	}
	cmd.AddCommand(
		newFavListCmd(app),
		newFavAddCmd(app),
		newFavRemoveCmd(app),
	)
	return cmd
}

// favoriteLabel names a favorite id, or reports false when it no longer
// resolves.
func favoriteLabel(ctx context.Context, app *App, kind domain.FavoriteKind, id string) (string, bool) {
	switch kind {
	case domain.FavoriteProject:
		if p, ok := app.Store.GetProject(ctx, id); ok {
			return p.Name, true
		}
	case domain.FavoriteBuilding:
		if ref, ok := app.Store.FindBuilding(ctx, id); ok {
			return ref.Project.Name + " › " + ref.Building.Name, true
		}
	case domain.FavoriteZone:
		if ref, ok := app.Store.FindZone(ctx, id); ok {
			return ref.Building.Name + " › " + ref.Zone.Name, true
		}
	case domain.FavoriteShutter:
		if ref, ok := app.Store.FindShutter(ctx, id); ok {
			return ref.Zone.Name + " › " + ref.Shutter.Name, true
		}
	}
	return "", false
}

func newFavListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list [KIND]",
		Short: "List favorites",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kinds := domain.FavoriteKinds
			if len(args) == 1 {
				k, err := domain.ParseFavoriteKind(args[0])
				if err != nil {
					return err
				}
				kinds = []domain.FavoriteKind{k}
			}

			var rows [][]string
			for _, kind := range kinds {
				for _, id := range app.Store.Favorites(ctx, kind) {
					label, ok := favoriteLabel(ctx, app, kind, id)
					if !ok {
						label = formatter.Dim("(deleted)")
					}
					rows = append(rows, []string{string(kind), formatter.TruncID(id), label})
				}
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No favorites.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"KIND", "ID", "NAME"}, rows))
			return nil
		},
	}
}

func newFavAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add KIND ID",
		Short: "Mark an entity as favorite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kind, err := domain.ParseFavoriteKind(args[0])
			if err != nil {
				return err
			}
			id, err := resolveID(ctx, app, string(kind), args[1])
			if err != nil {
				return err
			}
			ids := app.Store.Favorites(ctx, kind)
			if !slices.Contains(ids, id) {
				app.Store.SetFavorites(ctx, kind, append(ids, id))
			}
			label, _ := favoriteLabel(ctx, app, kind, id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s %s to favorites\n", formatter.Star(true), kind, label)
			return nil
		},
	}
}

func newFavRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove KIND ID",
		Aliases: []string{"rm"},
		Short:   "Remove an entity from favorites",
		Long:    "Remove an entity from favorites. ID may be a prefix and may refer to an entity that was already deleted.",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kind, err := domain.ParseFavoriteKind(args[0])
			if err != nil {
				return err
			}
			ids := app.Store.Favorites(ctx, kind)
			var matches []string
			for _, id := range ids {
				if id == args[1] {
					matches = []string{id}
					break
				}
				if strings.HasPrefix(id, args[1]) {
					matches = append(matches, id)
				}
			}
			switch len(matches) {
			case 0:
				return fmt.Errorf("%s %q is not a favorite", kind, args[1])
			case 1:
			default:
				return fmt.Errorf("%s ID prefix %q is ambiguous", kind, args[1])
			}
			app.Store.SetFavorites(ctx, kind, slices.DeleteFunc(ids, func(id string) bool { return id == matches[0] }))
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s from favorites\n", kind, formatter.TruncID(matches[0]))
			return nil
		},
	}
}
