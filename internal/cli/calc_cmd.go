package cli

import (
	"fmt"

	"github.com/alexanderramin/shutterflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCalcCmd(app *App) *cobra.Command {
	var refInput, measuredInput string

	cmd := &cobra.Command{
		Use:   "calc [REFERENCE MEASURED]",
		Short: "Evaluate a measurement without attaching it to a shutter",
		Example: `  shutterflow calc 5000 4650
  shutterflow calc --ref 5000 --measured 4650`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 2:
				refInput, measuredInput = args[0], args[1]
			case 1:
				return fmt.Errorf("both REFERENCE and MEASURED are required")
			}

			if refInput == "" || measuredInput == "" {
				if !app.Interactive {
					return fmt.Errorf("--ref and --measured are required")
				}
				if err := calcForm(&refInput, &measuredInput).Run(); err != nil {
					return err
				}
			}

			reference, err := parseFlow(refInput)
			if err != nil {
				return fmt.Errorf("invalid reference flow %q: %w", refInput, err)
			}
			measured, err := parseFlow(measuredInput)
			if err != nil {
				return fmt.Errorf("invalid measured flow %q: %w", measuredInput, err)
			}

			res, _ := app.QuickCalc.Calculate(cmd.Context(), reference, measured)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCalcResult(reference, measured, res))
			return nil
		},
	}

	cmd.Flags().StringVar(&refInput, "ref", "", "Reference flow (m³/h)")
	cmd.Flags().StringVar(&measuredInput, "measured", "", "Measured flow (m³/h)")

	cmd.AddCommand(
		newCalcHistoryCmd(app),
		newCalcClearCmd(app),
	)

	return cmd
}

func newCalcHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the most recent quick calculations",
		RunE: func(cmd *cobra.Command, args []string) error {
			items := app.Store.QuickCalcHistory(cmd.Context())
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No quick calculations yet.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(items, app.now()))
			return nil
		},
	}
}

func newCalcClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the quick-calc history",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Store.ClearQuickCalcHistory(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Quick-calc history cleared.")
			return nil
		},
	}
}
