package repository

import (
	"errors"

	"github.com/hrms-dev/hrms/backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

type uniqueField struct {
	entity string
	field  string
}

var uniqueConstraints = map[string]uniqueField{
	"accounts_email_key":        {entity: "User", field: "email"},
	"employees_email_key":       {entity: "Employee", field: "email"},
	"employees_employee_id_key": {entity: "Employee", field: "employeeId"},
}

// translatePgError maps driver errors onto the domain taxonomy. notFound is returned
// for pgx.ErrNoRows.
func translatePgError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		if f, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
			return &domain.DuplicateKeyError{Entity: f.entity, Field: f.field}
		}
		return &domain.DuplicateKeyError{Entity: "Record", Field: pgErr.ConstraintName}
	}

	return err
}
