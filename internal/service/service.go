// Package service holds what the domain services share.
package service

import (
	"errors"
	"fmt"

	"github.com/jwalitptl/salon-api/internal/repository"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

// FromRepository converts a repository error into an application error for resource.
func FromRepository(resource string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound(resource, err)
	case errors.Is(err, repository.ErrInvalidReference):
		return apperrors.BadRequest("invalid reference", err)
	case errors.Is(err, repository.ErrConflict):
		return apperrors.Conflict(fmt.Sprintf("%s was modified concurrently", resource), err)
	case errors.Is(err, repository.ErrInUse):
		return apperrors.Conflict(fmt.Sprintf("%s is still referenced by bookings", resource), err)
	default:
		return apperrors.Internal(err)
	}
}
