package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dolmengate/label-cms/internal/domain"
)

// storeError lifts the Postgres SQLSTATE into a domain.StoreError so the
// classifier can map it to a user-facing message. Non-Postgres errors pass
// through unchanged.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &domain.StoreError{Code: pgErr.Code, Message: pgErr.Message}
	}
	return err
}
