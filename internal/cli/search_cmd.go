package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/shutterflow/internal/cli/formatter"
	"github.com/alexanderramin/shutterflow/internal/store"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var errNotInteractive = errors.New("interactive mode needs a terminal")

func newSearchCmd(app *App) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "search [QUERY...]",
		Short: "Search shutters by name, location or remarks",
		Long: `Search shutters across every project. A shutter matches when each word of
the query appears in its name, zone, building, project, city or remarks.
Matching ignores case.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := strings.Join(args, " ")

			if interactive {
				if !app.Interactive {
					return errNotInteractive
				}
				search := func(q string) []store.SearchResult {
					return app.Store.SearchShutters(ctx, q)
				}
				_, err := tea.NewProgram(newBrowserModel(search, query),
					tea.WithContext(ctx),
					tea.WithInput(cmd.InOrStdin()),
					tea.WithOutput(cmd.OutOrStdout()),
				).Run()
				return err
			}

			if strings.TrimSpace(query) == "" {
				return fmt.Errorf("a search query is required (or use --interactive)")
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSearchResults(app.Store.SearchShutters(ctx, query)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open the interactive search browser")

	return cmd
}
