package cli

import (
	"fmt"

	"github.com/alexanderramin/shutterflow/internal/cli/formatter"
	"github.com/alexanderramin/shutterflow/internal/compliance"
	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/spf13/cobra"
)

func newBuildingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "building",
		Aliases: []string{"b"},
		Short:   "Manage buildings",
	}
	cmd.AddCommand(
		newBuildingAddCmd(app),
		newBuildingUpdateCmd(app),
		newBuildingRemoveCmd(app),
	)
	return cmd
}

func newBuildingAddCmd(app *App) *cobra.Command {
	var projectInput, name, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a building to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, projectInput)
			if err != nil {
				return err
			}
			b, ok := app.Store.CreateBuilding(ctx, projectID, domain.BuildingInput{Name: name, Description: description})
			if !ok {
				return fmt.Errorf("project not found: %q", projectInput)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created building %s [%s]\n", b.Name, domain.ShortID(b.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectInput, "project", "", "Project ID")
	cmd.Flags().StringVar(&name, "name", "", "Building name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newBuildingUpdateCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update building fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveBuildingID(ctx, app, args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !changed(flags, "name", "description") {
				return fmt.Errorf("nothing to update")
			}
			var patch domain.BuildingPatch
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			b, ok := app.Store.UpdateBuilding(ctx, id, patch)
			if !ok {
				return fmt.Errorf("building not found: %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated building %s\n", b.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Building name")
	cmd.Flags().StringVar(&description, "description", "", "Description")

	return cmd
}

func newBuildingRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a building with its zones and shutters",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveBuildingID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ref, _ := app.Store.FindBuilding(ctx, id)
			if !app.Store.DeleteBuilding(ctx, id) {
				return fmt.Errorf("building not found: %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed building %s from %s\n", ref.Building.Name, ref.Project.Name)
			return nil
		},
	}
}

func newZoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "zone",
		Aliases: []string{"z"},
		Short:   "Manage functional zones",
	}
	cmd.AddCommand(
		newZoneAddCmd(app),
		newZoneUpdateCmd(app),
		newZoneRemoveCmd(app),
	)
	return cmd
}

func newZoneAddCmd(app *App) *cobra.Command {
	var buildingInput, name, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a functional zone to a building",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			buildingID, err := resolveBuildingID(ctx, app, buildingInput)
			if err != nil {
				return err
			}
			z, ok := app.Store.CreateFunctionalZone(ctx, buildingID, domain.ZoneInput{Name: name, Description: description})
			if !ok {
				return fmt.Errorf("building not found: %q", buildingInput)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created zone %s [%s]\n", z.Name, domain.ShortID(z.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&buildingInput, "building", "", "Building ID")
	cmd.Flags().StringVar(&name, "name", "", "Zone name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("building")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newZoneUpdateCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update zone fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveZoneID(ctx, app, args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !changed(flags, "name", "description") {
				return fmt.Errorf("nothing to update")
			}
			var patch domain.ZonePatch
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			z, ok := app.Store.UpdateFunctionalZone(ctx, id, patch)
			if !ok {
				return fmt.Errorf("zone not found: %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated zone %s\n", z.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Zone name")
	cmd.Flags().StringVar(&description, "description", "", "Description")

	return cmd
}

func newZoneRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a zone with its shutters",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveZoneID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ref, _ := app.Store.FindZone(ctx, id)
			if !app.Store.DeleteFunctionalZone(ctx, id) {
				return fmt.Errorf("zone not found: %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed zone %s from %s\n", ref.Zone.Name, ref.Building.Name)
			return nil
		},
	}
}

func newShutterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "shutter",
		Aliases: []string{"s"},
		Short:   "Manage shutters and their measurements",
	}
	cmd.AddCommand(
		newShutterAddCmd(app),
		newShutterShowCmd(app),
		newShutterUpdateCmd(app),
		newShutterRemoveCmd(app),
	)
	return cmd
}

func newShutterAddCmd(app *App) *cobra.Command {
	var (
		zoneInput, name, remarks string
		shutterType              domain.ShutterType
		reference, measured      float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a shutter to a functional zone",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			zoneID, err := resolveZoneID(ctx, app, zoneInput)
			if err != nil {
				return err
			}
			sh, ok := app.Store.CreateShutter(ctx, zoneID, domain.ShutterInput{
				Name:          name,
				Type:          shutterType,
				ReferenceFlow: reference,
				MeasuredFlow:  measured,
				Remarks:       remarks,
			})
			if !ok {
				return fmt.Errorf("zone not found: %q", zoneInput)
			}
			res := compliance.Calculate(sh.ReferenceFlow, sh.MeasuredFlow)
			fmt.Fprintf(cmd.OutOrStdout(), "Created shutter %s [%s]: %s %s\n",
				sh.Name, domain.ShortID(sh.ID), formatter.Deviation(res), formatter.StatusBadge(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&zoneInput, "zone", "", "Functional zone ID")
	cmd.Flags().StringVar(&name, "name", "", "Shutter name")
	cmd.Flags().Var(newShutterTypeValue(domain.ShutterHigh, &shutterType), "type", "Shutter type (high|low)")
	cmd.Flags().Float64Var(&reference, "ref", 0, "Reference flow (m³/h)")
	cmd.Flags().Float64Var(&measured, "measured", 0, "Measured flow (m³/h)")
	cmd.Flags().StringVar(&remarks, "remarks", "", "Remarks")
	_ = cmd.MarkFlagRequired("zone")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newShutterShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a shutter and its evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveShutterID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ref, ok := app.Store.FindShutter(ctx, id)
			if !ok {
				return fmt.Errorf("shutter not found: %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatShutter(ref))
			return nil
		},
	}
}

func newShutterUpdateCmd(app *App) *cobra.Command {
	var (
		name, remarks       string
		shutterType         domain.ShutterType
		reference, measured float64
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update shutter fields or record a new measurement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveShutterID(ctx, app, args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !changed(flags, "name", "type", "ref", "measured", "remarks") {
				return fmt.Errorf("nothing to update")
			}
			var patch domain.ShutterPatch
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("type") {
				patch.Type = &shutterType
			}
			if flags.Changed("ref") {
				patch.ReferenceFlow = &reference
			}
			if flags.Changed("measured") {
				patch.MeasuredFlow = &measured
			}
			if flags.Changed("remarks") {
				patch.Remarks = &remarks
			}
			sh, ok := app.Store.UpdateShutter(ctx, id, patch)
			if !ok {
				return fmt.Errorf("shutter not found: %q", args[0])
			}
			res := compliance.Calculate(sh.ReferenceFlow, sh.MeasuredFlow)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated shutter %s: %s %s\n",
				sh.Name, formatter.Deviation(res), formatter.StatusBadge(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Shutter name")
	cmd.Flags().Var(newShutterTypeValue(domain.ShutterHigh, &shutterType), "type", "Shutter type (high|low)")
	cmd.Flags().Float64Var(&reference, "ref", 0, "Reference flow (m³/h)")
	cmd.Flags().Float64Var(&measured, "measured", 0, "Measured flow (m³/h)")
	cmd.Flags().StringVar(&remarks, "remarks", "", "Remarks")

	return cmd
}

func newShutterRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a shutter",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveShutterID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ref, _ := app.Store.FindShutter(ctx, id)
			if !app.Store.DeleteShutter(ctx, id) {
				return fmt.Errorf("shutter not found: %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed shutter %s from %s\n", ref.Shutter.Name, ref.Zone.Name)
			return nil
		},
	}
}
