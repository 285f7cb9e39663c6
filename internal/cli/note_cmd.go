package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alexanderramin/shutterflow/internal/cli/formatter"
	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/alexanderramin/shutterflow/internal/media"
	"github.com/spf13/cobra"
)

func newNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"n"},
		Short:   "Manage field notes",
	}
	cmd.AddCommand(
		newNoteAddCmd(app),
		newNoteListCmd(app),
		newNoteShowCmd(app),
		newNoteUpdateCmd(app),
		newNoteRemoveCmd(app),
		newNoteAttachCmd(app),
		newNoteDetachCmd(app),
	)
	return cmd
}

type noteFlags struct {
	title, description, location, content string
	tags                                  []string
}

func (f *noteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Title")
	cmd.Flags().StringVar(&f.description, "description", "", "Short description")
	cmd.Flags().StringVar(&f.location, "location", "", "Location on site")
	cmd.Flags().StringVar(&f.content, "content", "", "Body text")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Tag (repeatable)")
}

func newNoteAddCmd(app *App) *cobra.Command {
	var f noteFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			n := app.Store.CreateNote(cmd.Context(), domain.NoteInput{
				Title:       f.title,
				Description: f.description,
				Location:    f.location,
				Tags:        f.tags,
				Content:     f.content,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Created note %s [%s]\n", n.Title, domain.ShortID(n.ID))
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newNoteListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			notes := app.Store.GetNotes(cmd.Context())
			if len(notes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No notes found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNoteList(notes, app.now()))
			return nil
		},
	}
}

func newNoteShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveNoteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			n, ok := app.Store.GetNote(ctx, id)
			if !ok {
				return fmt.Errorf("note not found: %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNote(n, app.now()))
			return nil
		},
	}
}

func newNoteUpdateCmd(app *App) *cobra.Command {
	var f noteFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update note fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveNoteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !changed(flags, "title", "description", "location", "content", "tag") {
				return fmt.Errorf("nothing to update")
			}
			var patch domain.NotePatch
			if flags.Changed("title") {
				patch.Title = &f.title
			}
			if flags.Changed("description") {
				patch.Description = &f.description
			}
			if flags.Changed("location") {
				patch.Location = &f.location
			}
			if flags.Changed("content") {
				patch.Content = &f.content
			}
			if flags.Changed("tag") {
				patch.Tags = append([]string{}, f.tags...)
			}
			n, ok := app.Store.UpdateNote(ctx, id, patch)
			if !ok {
				return fmt.Errorf("note not found: %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated note %s\n", n.Title)
			return nil
		},
	}
	f.register(cmd)

	return cmd
}

func newNoteRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveNoteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !app.Store.DeleteNote(ctx, id) {
				return fmt.Errorf("note not found: %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed note %s\n", domain.ShortID(id))
			return nil
		},
	}
}

func newNoteAttachCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "attach ID FILE...",
		Short: "Attach photos to a note",
		Long:  "Attach photos to a note. Images are re-oriented, downsized and stored as JPEG data URLs.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveNoteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			for _, path := range args[1:] {
				encoded, err := encodeImageFile(path, app.Media)
				if err != nil {
					return err
				}
				n, ok := app.Store.AddNoteImage(ctx, id, encoded)
				if !ok {
					return fmt.Errorf("note not found: %q", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Attached %s to %s (%d image(s))\n", path, n.Title, len(n.Images))
			}
			return nil
		},
	}
}

func encodeImageFile(path string, opts media.Options) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	encoded, err := media.EncodeImage(f, opts)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}
	return encoded, nil
}

func newNoteDetachCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "detach ID INDEX",
		Short: "Remove a photo from a note by its 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveNoteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			pos, err := strconv.Atoi(args[1])
			if err != nil || pos < 1 {
				return fmt.Errorf("invalid image index %q", args[1])
			}
			n, ok := app.Store.RemoveNoteImage(ctx, id, pos-1)
			if !ok {
				return fmt.Errorf("note has no image %d", pos)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed image %d from %s\n", pos, n.Title)
			return nil
		},
	}
}
