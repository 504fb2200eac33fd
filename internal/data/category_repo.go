package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/khunglong92/dogiadung-sub001/internal/data/database"
	"github.com/khunglong92/dogiadung-sub001/internal/data/pgxutil"
	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
)

// CategoryRepo provides database operations for categories.
type CategoryRepo struct {
	DB    *sql.DB
	clock Clock
}

// NewCategoryRepo creates a new CategoryRepo with real time provider.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{DB: db, clock: time.Now}
}

// NewCategoryRepoWithClock creates a CategoryRepo with a custom clock for tests.
func NewCategoryRepoWithClock(db *sql.DB, clock Clock) *CategoryRepo {
	return &CategoryRepo{DB: db, clock: clock}
}

const (
	categoryGetByIDQuery = `
		SELECT id, name, description, created_at, updated_at
		FROM categories
		WHERE id = $1`

	categoryGetByNameQuery = `
		SELECT id, name, description, created_at, updated_at
		FROM categories
		WHERE name = $1`
)

func categoryColumns() []string {
	return []string{"id", "name", "description", "created_at", "updated_at"}
}

// Create inserts a new category.
func (r *CategoryRepo) Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	if req == nil {
		return nil, errors.New("create category request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	createdAt := r.clock().UTC()
	var out model.Category
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO categories (name, description, created_at, updated_at)
			VALUES ($1, $2, $3, $3)
			RETURNING id, name, description, created_at, updated_at`,
			strings.TrimSpace(req.Name),
			req.Description,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Category])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, writeErrMap{NameExists: ErrCategoryNameExists})
	}
	return &out, nil
}

// GetByID retrieves a category by ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*model.Category, error) {
	return r.getByQuery(ctx, categoryGetByIDQuery, "failed to get category by ID", id)
}

// GetByName retrieves a category by name.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*model.Category, error) {
	return r.getByQuery(ctx, categoryGetByNameQuery, "failed to get category by name", name)
}

// List retrieves categories with optional filters and sorting.
func (r *CategoryRepo) List(ctx context.Context, opts model.CategoriesListOptions) ([]*model.Category, error) {
	query, args := database.BuildListQuery(r.buildQueryOptions(opts, false))

	var rowsOut []model.Category
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Category])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	res := make([]*model.Category, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Count returns the number of categories matching the filters in opts.
func (r *CategoryRepo) Count(ctx context.Context, opts model.CategoriesListOptions) (int, error) {
	query, args := database.BuildListQuery(r.buildQueryOptions(opts, true))
	var n int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&n)
	}); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return n, nil
}

// Update updates fields of a category.
func (r *CategoryRepo) Update(ctx context.Context, id string, req model.UpdateCategoryRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 3)
	args := make([]any, 0, 4)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
		args = append(args, *req.Description)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.clock().UTC())

	args = append(args, id)
	query := "UPDATE categories SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING id, name, description, created_at, updated_at"

	var out model.Category
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Category])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, writeErrMap{NotFound: ErrCategoryNotFound, NameExists: ErrCategoryNameExists})
	}
	return &out, nil
}

// Delete deletes a category by ID. Deleting a category still referenced by
// products fails with ErrForeignKey; the server never cascades.
func (r *CategoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, mapWriteErr(err, writeErrMap{})
	}
	return rows > 0, nil
}

func (r *CategoryRepo) buildQueryOptions(opts model.CategoriesListOptions, countOnly bool) *database.ListQueryOptions {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(categoryColumns()...),
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
			database.WhereCond("description", database.ILike, q),
		))
	}
	return database.NewListQueryOptions("categories", queryOpts...)
}

// getByQuery is a helper function to execute a query and return a single category.
func (r *CategoryRepo) getByQuery(ctx context.Context, q, errMsg string, args ...any) (*model.Category, error) {
	var out model.Category
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Category])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &out, nil
}
