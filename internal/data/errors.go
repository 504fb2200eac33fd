package data

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Shared sentinel errors for data-layer repositories.
var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryNameExists = errors.New("category name already exists")

	ErrProductNotFound   = errors.New("product not found")
	ErrProductNameExists = errors.New("product name already exists")

	ErrServiceNotFound   = errors.New("service not found")
	ErrServiceNameExists = errors.New("service name already exists")

	ErrProjectNotFound   = errors.New("project not found")
	ErrProjectNameExists = errors.New("project name already exists")

	ErrContactNotFound = errors.New("contact not found")

	ErrUserNotFound    = errors.New("user not found")
	ErrUserEmailExists = errors.New("user email already exists")

	ErrWebhookSinkNotFound   = errors.New("webhook sink not found")
	ErrWebhookSinkNameExists = errors.New("webhook sink name already exists")

	// ErrForeignKey is returned when a write violates a foreign key constraint
	// (e.g. a product referencing a missing category, or deleting a referenced category).
	ErrForeignKey = errors.New("related records constrain this operation")
)

// writeErrMap groups the sentinels substituted for raw pg errors on writes.
type writeErrMap struct {
	NotFound   error // substituted for pgx.ErrNoRows when set
	NameExists error // substituted for unique violations when set
}

// mapWriteErr converts low-level pgx errors into repository sentinels.
func mapWriteErr(err error, m writeErrMap) error {
	if err == nil {
		return nil
	}
	if m.NotFound != nil && errors.Is(err, pgx.ErrNoRows) {
		return m.NotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			if m.NameExists != nil {
				return m.NameExists
			}
		case pgerrcode.ForeignKeyViolation:
			return ErrForeignKey
		}
	}
	return err
}
