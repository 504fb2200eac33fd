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

// ProductRepo provides database operations for products.
type ProductRepo struct {
	DB    *sql.DB
	clock Clock
}

// NewProductRepo creates a new ProductRepo with real time provider.
func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{DB: db, clock: time.Now}
}

// NewProductRepoWithClock creates a ProductRepo with a custom clock for tests.
func NewProductRepoWithClock(db *sql.DB, clock Clock) *ProductRepo {
	return &ProductRepo{DB: db, clock: clock}
}

const productGetByIDQuery = `
	SELECT id, name, description, price, image_url, category_id, created_at, updated_at
	FROM products
	WHERE id = $1`

func productColumns() []string {
	return []string{"id", "name", "description", "price", "image_url", "category_id", "created_at", "updated_at"}
}

// Create inserts a new product.
func (r *ProductRepo) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if req == nil {
		return nil, errors.New("create product request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	createdAt := r.clock().UTC()
	var out model.Product
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO products (name, description, price, image_url, category_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING id, name, description, price, image_url, category_id, created_at, updated_at`,
			strings.TrimSpace(req.Name),
			req.Description,
			req.Price,
			req.ImageURL,
			req.CategoryID,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Product])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, writeErrMap{NameExists: ErrProductNameExists})
	}
	return &out, nil
}

// GetByID retrieves a product by ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var out model.Product
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, productGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Product])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}
	return &out, nil
}

// List retrieves products with filters, sorting, and paging.
func (r *ProductRepo) List(ctx context.Context, opts model.ProductsListOptions) ([]*model.Product, error) {
	query, args := database.BuildListQuery(r.buildQueryOptions(opts, false))

	var rowsOut []model.Product
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Product])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	res := make([]*model.Product, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Count returns the number of products matching the filters in opts.
func (r *ProductRepo) Count(ctx context.Context, opts model.ProductsListOptions) (int, error) {
	query, args := database.BuildListQuery(r.buildQueryOptions(opts, true))
	var n int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&n)
	}); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// Update updates fields of a product.
func (r *ProductRepo) Update(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 6)
	args := make([]any, 0, 7)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
		args = append(args, *req.Description)
	}
	if req.Price != nil {
		setParts = append(setParts, fmt.Sprintf("price = $%d", nextIdx()))
		args = append(args, *req.Price)
	}
	if req.ImageURL != nil {
		if strings.TrimSpace(*req.ImageURL) == "" {
			setParts = append(setParts, "image_url = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("image_url = $%d", nextIdx()))
			args = append(args, *req.ImageURL)
		}
	}
	if req.CategoryID != nil {
		setParts = append(setParts, fmt.Sprintf("category_id = $%d", nextIdx()))
		args = append(args, *req.CategoryID)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.clock().UTC())

	args = append(args, id)
	query := "UPDATE products SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING id, name, description, price, image_url, category_id, created_at, updated_at"

	var out model.Product
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Product])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, writeErrMap{NotFound: ErrProductNotFound, NameExists: ErrProductNameExists})
	}
	return &out, nil
}

// Delete deletes a product by ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return rows > 0, nil
}

func (r *ProductRepo) buildQueryOptions(opts model.ProductsListOptions, countOnly bool) *database.ListQueryOptions {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(productColumns()...),
	}
	if countOnly {
		queryOpts = append(queryOpts, database.WithCountOnly())
	} else {
		queryOpts = append(queryOpts, database.WithLimit(limit), database.WithOffset(offset))
		sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir, "name", "price", "created_at")
		queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		q := "%" + strings.TrimSpace(*opts.Q) + "%"
		queryOpts = append(queryOpts, database.WithOrConditions(
			database.WhereCond("name", database.ILike, q),
			database.WhereCond("description", database.ILike, q),
		))
	}
	if opts.CategoryID != nil && strings.TrimSpace(*opts.CategoryID) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("category_id", database.Equal, strings.TrimSpace(*opts.CategoryID)),
		))
	}
	return database.NewListQueryOptions("products", queryOpts...)
}
