package cli

import (
	"fmt"
	"path/filepath"

	"github.com/alexanderramin/shutterflow/internal/cli/formatter"
	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/alexanderramin/shutterflow/internal/importer"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export PROJECT",
		Short: "Export a project and its related notes to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if dir == "" {
				dir = app.ExportDir
			}
			res, err := app.Transfer.ExportProject(ctx, id, dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s (%d related note(s))\n",
				res.Document.Project.Name, res.Path, res.RelatedNotes)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (defaults to the configured export dir)")

	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a project export as a new project",
		Long:  "Import a project export. Every entity receives a fresh ID, so importing the same file twice creates two projects.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Transfer.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported project %s [%s]: %d building(s), %d shutter(s), %d note(s)\n",
				res.Project.Name, res.Project.DisplayID(), len(res.Project.Buildings), res.ShutterCount, len(res.Notes))
			return nil
		},
	}
}

func newReportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "report PROJECT",
		Short: "Write an Excel compliance report for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if out == "" {
				p, _ := app.Store.GetProject(ctx, id)
				out = filepath.Join(app.ExportDir, reportFileName(p))
			}
			res, err := app.Reports.WriteProjectReport(ctx, id, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d measurement(s), %s within tolerance\n",
				res.Path, res.Rows, formatter.Rate(res.Summary.Rate()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output .xlsx path")

	return cmd
}

func reportFileName(p *domain.Project) string {
	base := importer.SanitizeFileName(p.Name)
	if base == "" {
		base = "rapport"
	}
	return base + "_rapport.xlsx"
}
