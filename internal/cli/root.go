package cli

import (
	"time"

	"github.com/alexanderramin/shutterflow/internal/media"
	"github.com/alexanderramin/shutterflow/internal/service"
	"github.com/alexanderramin/shutterflow/internal/store"
	"github.com/spf13/cobra"
)

// App holds the store and services used by CLI commands.
type App struct {
	Store     *store.Store
	Transfer  service.TransferService
	Reports   service.ReportService
	QuickCalc service.QuickCalcService
	Status    service.StatusService

	Media     media.Options
	ExportDir string

	// StorageDriver and StorageLocation are shown by "data info".
	StorageDriver   string
	StorageLocation string

	// Interactive is true when stdin is a terminal; forms and the search
	// browser are only offered then.
	Interactive bool
	Version     string
	Now         func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "shutterflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "shutterflow",
		Short:         "Smoke-extraction shutter airflow compliance",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newBuildingCmd(app),
		newZoneCmd(app),
		newShutterCmd(app),
		newSearchCmd(app),
		newCalcCmd(app),
		newFavCmd(app),
		newNoteCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newReportCmd(app),
		newDataCmd(app),
	)

	return root
}
