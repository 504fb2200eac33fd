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

// ServiceRepo provides database operations for service offerings.
type ServiceRepo struct {
	DB    *sql.DB
	clock Clock
}

// NewServiceRepo creates a new ServiceRepo with real time provider.
func NewServiceRepo(db *sql.DB) *ServiceRepo {
	return &ServiceRepo{DB: db, clock: time.Now}
}

func serviceColumns() []string {
	return []string{"id", "name", "description", "image_url", "created_at", "updated_at"}
}

// Create inserts a new service offering.
func (r *ServiceRepo) Create(ctx context.Context, req *model.CreateServiceRequest) (*model.ServiceOffering, error) {
	if req == nil {
		return nil, errors.New("create service request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	createdAt := r.clock().UTC()
	var out model.ServiceOffering
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO services (name, description, image_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			RETURNING id, name, description, image_url, created_at, updated_at`,
			strings.TrimSpace(req.Name),
			req.Description,
			req.ImageURL,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ServiceOffering])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, writeErrMap{NameExists: ErrServiceNameExists})
	}
	return &out, nil
}

// GetByID retrieves a service offering by ID.
func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*model.ServiceOffering, error) {
	var out model.ServiceOffering
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, name, description, image_url, created_at, updated_at
			FROM services WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ServiceOffering])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service by ID: %w", err)
	}
	return &out, nil
}

// List retrieves service offerings with filters, sorting, and paging.
func (r *ServiceRepo) List(ctx context.Context, opts model.ServicesListOptions) ([]*model.ServiceOffering, error) {
	query, args := database.BuildListQuery(r.buildQueryOptions(opts, false))

	var rowsOut []model.ServiceOffering
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ServiceOffering])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	res := make([]*model.ServiceOffering, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Count returns the number of service offerings matching the filters in opts.
func (r *ServiceRepo) Count(ctx context.Context, opts model.ServicesListOptions) (int, error) {
	query, args := database.BuildListQuery(r.buildQueryOptions(opts, true))
	var n int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&n)
	}); err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return n, nil
}

// Update updates fields of a service offering.
func (r *ServiceRepo) Update(ctx context.Context, id string, req model.UpdateServiceRequest) (*model.ServiceOffering, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 4)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
		args = append(args, *req.Description)
	}
	if req.ImageURL != nil {
		if strings.TrimSpace(*req.ImageURL) == "" {
			setParts = append(setParts, "image_url = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("image_url = $%d", nextIdx()))
			args = append(args, *req.ImageURL)
		}
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.clock().UTC())

	args = append(args, id)
	query := "UPDATE services SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING id, name, description, image_url, created_at, updated_at"

	var out model.ServiceOffering
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ServiceOffering])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, writeErrMap{NotFound: ErrServiceNotFound, NameExists: ErrServiceNameExists})
	}
	return &out, nil
}

// Delete deletes a service offering by ID.
func (r *ServiceRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete service: %w", err)
	}
	return rows > 0, nil
}

func (r *ServiceRepo) buildQueryOptions(opts model.ServicesListOptions, countOnly bool) *database.ListQueryOptions {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(serviceColumns()...),
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
	return database.NewListQueryOptions("services", queryOpts...)
}
