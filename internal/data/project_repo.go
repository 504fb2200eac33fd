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

// ProjectRepo provides database operations for reference projects.
type ProjectRepo struct {
	DB    *sql.DB
	clock Clock
}

// NewProjectRepo creates a new ProjectRepo with real time provider.
func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{DB: db, clock: time.Now}
}

func projectColumns() []string {
	return []string{"id", "name", "description", "image_url", "location", "created_at", "updated_at"}
}

// Create inserts a new project.
func (r *ProjectRepo) Create(ctx context.Context, req *model.CreateProjectRequest) (*model.Project, error) {
	if req == nil {
		return nil, errors.New("create project request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	createdAt := r.clock().UTC()
	var out model.Project
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO projects (name, description, image_url, location, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING id, name, description, image_url, location, created_at, updated_at`,
			strings.TrimSpace(req.Name),
			req.Description,
			req.ImageURL,
			req.Location,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Project])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, writeErrMap{NameExists: ErrProjectNameExists})
	}
	return &out, nil
}

// GetByID retrieves a project by ID.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	var out model.Project
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, name, description, image_url, location, created_at, updated_at
			FROM projects WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Project])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project by ID: %w", err)
	}
	return &out, nil
}

// List retrieves projects with filters, sorting, and paging.
func (r *ProjectRepo) List(ctx context.Context, opts model.ProjectsListOptions) ([]*model.Project, error) {
	query, args := database.BuildListQuery(r.buildQueryOptions(opts, false))

	var rowsOut []model.Project
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Project])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	res := make([]*model.Project, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Count returns the number of projects matching the filters in opts.
func (r *ProjectRepo) Count(ctx context.Context, opts model.ProjectsListOptions) (int, error) {
	query, args := database.BuildListQuery(r.buildQueryOptions(opts, true))
	var n int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&n)
	}); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return n, nil
}

// Update updates fields of a project.
func (r *ProjectRepo) Update(ctx context.Context, id string, req model.UpdateProjectRequest) (*model.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 5)
	args := make([]any, 0, 6)
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
		setParts = append(setParts, fmt.Sprintf("image_url = $%d", nextIdx()))
		args = append(args, *req.ImageURL)
	}
	if req.Location != nil {
		setParts = append(setParts, fmt.Sprintf("location = $%d", nextIdx()))
		args = append(args, *req.Location)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.clock().UTC())

	args = append(args, id)
	query := "UPDATE projects SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING id, name, description, image_url, location, created_at, updated_at"

	var out model.Project
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Project])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, writeErrMap{NotFound: ErrProjectNotFound, NameExists: ErrProjectNameExists})
	}
	return &out, nil
}

// Delete deletes a project by ID.
func (r *ProjectRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	return rows > 0, nil
}

func (r *ProjectRepo) buildQueryOptions(opts model.ProjectsListOptions, countOnly bool) *database.ListQueryOptions {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(projectColumns()...),
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
	return database.NewListQueryOptions("projects", queryOpts...)
}
