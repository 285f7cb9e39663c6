package service

import (
	"errors"
	"fmt"
)

// ErrProjectNotFound is returned when a use case names a project id that the
// store does not hold.
var ErrProjectNotFound = errors.New("project not found")

func projectNotFound(id string) error {
	return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
