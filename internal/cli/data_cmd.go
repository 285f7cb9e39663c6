package cli

import (
	"fmt"

	"github.com/alexanderramin/shutterflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDataCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Inspect or wipe local storage",
	}
	cmd.AddCommand(
		newDataInfoCmd(app),
		newDataClearCmd(app),
	)
	return cmd
}

func newDataInfoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show storage usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := app.Store.StorageInfo(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStorageInfo(info, app.StorageDriver, app.StorageLocation))
			return nil
		},
	}
}

func newDataClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every project, favorite, note and calculation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.Interactive {
					return fmt.Errorf("refusing to clear storage without --yes")
				}
				if err := confirmForm("Delete all shutterflow data?", &yes).Run(); err != nil {
					return err
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			app.Store.ClearAllData(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "All data cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
