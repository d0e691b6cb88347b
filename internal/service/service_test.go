package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/salon-api/internal/repository"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

func TestFromRepository(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code apperrors.ErrorCode
	}{
		{"not found", fmt.Errorf("get: %w", repository.ErrNotFound), apperrors.ErrNotFound},
		{"invalid reference", repository.ErrInvalidReference, apperrors.ErrBadRequest},
		{"conflict", repository.ErrConflict, apperrors.ErrConflict},
		{"in use", repository.ErrInUse, apperrors.ErrConflict},
		{"other", errors.New("connection reset"), apperrors.ErrInternal},
		{"already translated", apperrors.Transport(errors.New("smtp")), apperrors.ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromRepository("booking", tt.err)
			assert.Equal(t, tt.code, apperrors.CodeOf(err))
		})
	}

	assert.NoError(t, FromRepository("booking", nil))
}

func TestFromRepository_NotFoundMessage(t *testing.T) {
	err := FromRepository("stylist", repository.ErrNotFound)

	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "stylist not found", appErr.Message)
}
