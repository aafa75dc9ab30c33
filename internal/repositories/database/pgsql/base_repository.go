package pgsql

import (
	"errors"
	"fmt"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// uniqueFields maps unique index names onto the field they protect.
type uniqueFields map[string]string

// translateWriteError turns unique violations into apperrors values. Violations of
// adminIndex become apperrors.ErrAdminAlreadyGranted; those of an index in fields a
// *apperrors.DuplicateError naming the field.
func (r *BaseRepository) translateWriteError(err error, op string, fields uniqueFields, adminIndex string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if adminIndex != "" && pgErr.ConstraintName == adminIndex {
			return apperrors.ErrAdminAlreadyGranted
		}
		if field, ok := fields[pgErr.ConstraintName]; ok {
			return &apperrors.DuplicateError{Field: field}
		}
		return fmt.Errorf("%s: %w", op, apperrors.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
