package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jwalitptl/salon-api/internal/repository"
)

const foreignKeyViolation = pq.ErrorCode("23503")

// translateError maps driver errors onto repository sentinels. A foreign key
// violation becomes onFK, which differs between writes and deletes.
func translateError(err error, onFK error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return onFK
	}
	return err
}

// requireRow turns a zero-row write into ErrNotFound.
func requireRow(result sql.Result, entity string, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, repository.ErrNotFound)
	}
	return nil
}
