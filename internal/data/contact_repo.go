package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/khunglong92/dogiadung-sub001/internal/data/database"
	"github.com/khunglong92/dogiadung-sub001/internal/data/pgxutil"
	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
)

// ContactRepo provides database operations for contact requests.
type ContactRepo struct {
	DB    *sql.DB
	clock Clock
}

// NewContactRepo creates a new ContactRepo with real time provider.
func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{DB: db, clock: time.Now}
}

func contactColumns() []string {
	return []string{"id", "name", "email", "phone", "message", "status", "created_at", "updated_at"}
}

// Create inserts a new contact request with status "new".
func (r *ContactRepo) Create(ctx context.Context, req *model.CreateContactRequest) (*model.Contact, error) {
	if req == nil {
		return nil, errors.New("create contact request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	createdAt := r.clock().UTC()
	var out model.Contact
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO contacts (name, email, phone, message, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING id, name, email, phone, message, status, created_at, updated_at`,
			strings.TrimSpace(req.Name),
			strings.TrimSpace(req.Email),
			req.Phone,
			req.Message,
			model.ContactStatusNew,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Contact])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, writeErrMap{})
	}
	return &out, nil
}

// GetByID retrieves a contact by ID.
func (r *ContactRepo) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	var out model.Contact
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, name, email, phone, message, status, created_at, updated_at
			FROM contacts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Contact])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact by ID: %w", err)
	}
	return &out, nil
}

// List retrieves contacts with filters, sorting, and paging.
func (r *ContactRepo) List(ctx context.Context, opts model.ContactsListOptions) ([]*model.Contact, error) {
	query, args := database.BuildListQuery(r.buildQueryOptions(opts, false))

	var rowsOut []model.Contact
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Contact])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	res := make([]*model.Contact, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Count returns the number of contacts matching the filters in opts.
func (r *ContactRepo) Count(ctx context.Context, opts model.ContactsListOptions) (int, error) {
	query, args := database.BuildListQuery(r.buildQueryOptions(opts, true))
	var n int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&n)
	}); err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}
	return n, nil
}

// Update updates the status of a contact.
func (r *ContactRepo) Update(ctx context.Context, id string, req model.UpdateContactRequest) (*model.Contact, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Contact
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE contacts SET status = $1, updated_at = $2
			WHERE id = $3
			RETURNING id, name, email, phone, message, status, created_at, updated_at`,
			*req.Status,
			r.clock().UTC(),
			id,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Contact])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, writeErrMap{NotFound: ErrContactNotFound})
	}
	return &out, nil
}

// Delete deletes a contact by ID.
func (r *ContactRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete contact: %w", err)
	}
	return rows > 0, nil
}

func (r *ContactRepo) buildQueryOptions(opts model.ContactsListOptions, countOnly bool) *database.ListQueryOptions {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(contactColumns()...),
	}
	if countOnly {
		queryOpts = append(queryOpts, database.WithCountOnly())
	} else {
		queryOpts = append(queryOpts, database.WithLimit(limit), database.WithOffset(offset))
		sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir, "name", "created_at")
		queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		q := "%" + strings.TrimSpace(*opts.Q) + "%"
		queryOpts = append(queryOpts, database.WithOrConditions(
			database.WhereCond("name", database.ILike, q),
			database.WhereCond("email", database.ILike, q),
		))
	}
	if opts.Status != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, *opts.Status),
		))
	}
	return database.NewListQueryOptions("contacts", queryOpts...)
}
