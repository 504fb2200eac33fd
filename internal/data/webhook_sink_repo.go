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

// WebhookSinkRepo provides database operations for contact webhook sinks.
type WebhookSinkRepo struct {
	DB    *sql.DB
	clock Clock
}

// NewWebhookSinkRepo creates a new WebhookSinkRepo with real time provider.
func NewWebhookSinkRepo(db *sql.DB) *WebhookSinkRepo {
	return &WebhookSinkRepo{DB: db, clock: time.Now}
}

func webhookSinkColumns() []string {
	return []string{"id", "name", "url", "method", "headers", "extract", "enabled", "created_at", "updated_at"}
}

// Create inserts a new webhook sink.
func (r *WebhookSinkRepo) Create(ctx context.Context, req *model.CreateWebhookSinkRequest) (*model.WebhookSink, error) {
	if req == nil {
		return nil, errors.New("create webhook sink request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	createdAt := r.clock().UTC()
	var out model.WebhookSink
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO webhook_sinks (name, url, method, headers, extract, enabled, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			RETURNING id, name, url, method, headers, extract, enabled, created_at, updated_at`,
			req.Name,
			req.URL,
			req.Method,
			req.Headers,
			req.Extract,
			enabled,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.WebhookSink])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, writeErrMap{NameExists: ErrWebhookSinkNameExists})
	}
	return &out, nil
}

// GetByID retrieves a webhook sink by ID.
func (r *WebhookSinkRepo) GetByID(ctx context.Context, id string) (*model.WebhookSink, error) {
	var out model.WebhookSink
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, name, url, method, headers, extract, enabled, created_at, updated_at
			FROM webhook_sinks WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.WebhookSink])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWebhookSinkNotFound
		}
		return nil, fmt.Errorf("failed to get webhook sink by ID: %w", err)
	}
	return &out, nil
}

// ListEnabled retrieves all enabled sinks. Used by the contact dispatcher,
// which fans out to every enabled sink on each new contact.
func (r *WebhookSinkRepo) ListEnabled(ctx context.Context) ([]*model.WebhookSink, error) {
	enabled := true
	return r.List(ctx, model.WebhookSinksListOptions{Limit: -1, Enabled: &enabled})
}

// List retrieves webhook sinks with filters, sorting, and paging.
func (r *WebhookSinkRepo) List(ctx context.Context, opts model.WebhookSinksListOptions) ([]*model.WebhookSink, error) {
	query, args := database.BuildListQuery(r.buildQueryOptions(opts, false))

	var rowsOut []model.WebhookSink
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.WebhookSink])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list webhook sinks: %w", err)
	}

	res := make([]*model.WebhookSink, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Count returns the number of webhook sinks matching the filters in opts.
func (r *WebhookSinkRepo) Count(ctx context.Context, opts model.WebhookSinksListOptions) (int, error) {
	query, args := database.BuildListQuery(r.buildQueryOptions(opts, true))
	var n int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&n)
	}); err != nil {
		return 0, fmt.Errorf("failed to count webhook sinks: %w", err)
	}
	return n, nil
}

// Update updates an existing webhook sink.
func (r *WebhookSinkRepo) Update(ctx context.Context, id string, req model.UpdateWebhookSinkRequest) (*model.WebhookSink, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 7)
	args := make([]any, 0, 8)
	nextIdx := func() int {
		return len(args) + 1
	}

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, *req.Name)
	}
	if req.URL != nil {
		setParts = append(setParts, fmt.Sprintf("url = $%d", nextIdx()))
		args = append(args, *req.URL)
	}
	if req.Method != nil {
		setParts = append(setParts, fmt.Sprintf("method = $%d", nextIdx()))
		args = append(args, *req.Method)
	}
	if req.Headers != nil {
		setParts = append(setParts, fmt.Sprintf("headers = $%d", nextIdx()))
		if strings.TrimSpace(*req.Headers) == "" {
			args = append(args, nil)
		} else {
			args = append(args, *req.Headers)
		}
	}
	if req.Extract != nil {
		setParts = append(setParts, fmt.Sprintf("extract = $%d", nextIdx()))
		if strings.TrimSpace(*req.Extract) == "" {
			args = append(args, nil)
		} else {
			args = append(args, *req.Extract)
		}
	}
	if req.Enabled != nil {
		setParts = append(setParts, fmt.Sprintf("enabled = $%d", nextIdx()))
		args = append(args, *req.Enabled)
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.clock().UTC())

	query := fmt.Sprintf(`
		UPDATE webhook_sinks SET %s
		WHERE id = $%d
		RETURNING id, name, url, method, headers, extract, enabled, created_at, updated_at`,
		strings.Join(setParts, ", "), nextIdx())
	args = append(args, id)

	var out model.WebhookSink
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.WebhookSink])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, writeErrMap{NotFound: ErrWebhookSinkNotFound, NameExists: ErrWebhookSinkNameExists})
	}
	return &out, nil
}

// Delete deletes a webhook sink by ID.
func (r *WebhookSinkRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM webhook_sinks WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete webhook sink: %w", err)
	}
	return rows > 0, nil
}

func (r *WebhookSinkRepo) buildQueryOptions(opts model.WebhookSinksListOptions, countOnly bool) *database.ListQueryOptions {
	queryOpts := []database.ListQueryOption{
		database.WithColumns(webhookSinkColumns()...),
	}
	if countOnly {
		queryOpts = append(queryOpts, database.WithCountOnly())
	} else {
		// Limit < 0 means unbounded, used by ListEnabled.
		if opts.Limit == 0 {
			opts.Limit = 50
		}
		if opts.Limit > 0 {
			queryOpts = append(queryOpts, database.WithLimit(opts.Limit), database.WithOffset(max(opts.Offset, 0)))
		}
		sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir, "name", "created_at")
		queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		q := "%" + strings.TrimSpace(*opts.Q) + "%"
		queryOpts = append(queryOpts, database.WithOrConditions(
			database.WhereCond("name", database.ILike, q),
			database.WhereCond("url", database.ILike, q),
		))
	}
	if opts.Enabled != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("enabled", database.Equal, *opts.Enabled),
		))
	}
	return database.NewListQueryOptions("webhook_sinks", queryOpts...)
}
