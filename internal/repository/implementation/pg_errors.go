package implementation

import (
	"errors"
	"fmt"

	"notes-admin-be/internal/entity"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes surfaced as domain errors.
const (
	pgStringTooLong       = "22001"
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"

	usernameUniqueConstraint = "users_username_key"
)

// Column and constraint names as declared in the migrations.
var fieldByColumn = map[string]string{
	"owner_id":                       "owner",
	"user_id":                        "user",
	"notes_owner_id_fkey":            "owner",
	"notes_title_not_blank":          "title",
	"notes_updated_after_created":    "updated_at",
	"admin_log_entries_user_id_fkey": "user",
}

func fieldFor(name, fallback string) string {
	if field, ok := fieldByColumn[name]; ok {
		return field
	}
	if name != "" {
		return name
	}
	return fallback
}

// translateError maps constraint violations raised by Postgres onto the
// entity errors. Postgres does not name the column on a length failure, so
// boundedField and limit describe the one bounded column of the table.
func translateError(err error, boundedField string, limit int) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgStringTooLong:
		return &entity.FieldError{Field: boundedField, Err: entity.ErrTooLong, Limit: limit}
	case pgNotNullViolation:
		return entity.NewFieldError(fieldFor(pgErr.ColumnName, boundedField), entity.ErrRequired)
	case pgForeignKeyViolation:
		return entity.NewFieldError(fieldFor(pgErr.ConstraintName, "owner"), entity.ErrDanglingReference)
	case pgUniqueViolation:
		if pgErr.ConstraintName == usernameUniqueConstraint {
			return fmt.Errorf("%w: %s", entity.ErrUsernameTaken, pgErr.Detail)
		}
	case pgCheckViolation:
		return entity.NewFieldError(fieldFor(pgErr.ConstraintName, boundedField), entity.ErrRequired)
	}
	return err
}
