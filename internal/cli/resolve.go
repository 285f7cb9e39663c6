package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/alexanderramin/shutterflow/internal/store"
)

// resolveID accepts a full id or a unique id prefix of the given kind.
func resolveID(ctx context.Context, app *App, kind, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	id, err := app.Store.ResolveID(ctx, kind, input)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case errors.Is(err, store.ErrAmbiguous):
		return "", fmt.Errorf("%s ID prefix %q is ambiguous", kind, input)
	case err != nil:
		return "", err
	}
	return id, nil
}

func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	return resolveID(ctx, app, string(domain.FavoriteProject), input)
}

func resolveBuildingID(ctx context.Context, app *App, input string) (string, error) {
	return resolveID(ctx, app, string(domain.FavoriteBuilding), input)
}

func resolveZoneID(ctx context.Context, app *App, input string) (string, error) {
	return resolveID(ctx, app, string(domain.FavoriteZone), input)
}

func resolveShutterID(ctx context.Context, app *App, input string) (string, error) {
	return resolveID(ctx, app, string(domain.FavoriteShutter), input)
}

func resolveNoteID(ctx context.Context, app *App, input string) (string, error) {
	return resolveID(ctx, app, store.KindNote, input)
}
