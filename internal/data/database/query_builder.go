package database

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ConditionType is the SQL operator applied by a Condition.
type ConditionType string

const (
	Equal ConditionType = "="
	ILike ConditionType = "ILIKE"
)

// Condition is a single WHERE clause predicate.
type Condition struct {
	Field string
	Type  ConditionType
	Value any
}

// WhereCond constructs a Condition for the given field, operator, and value.
func WhereCond(field string, condType ConditionType, value any) Condition {
	return Condition{Field: field, Type: condType, Value: value}
}

// ListQueryOptions describes a parameterized list (or count) query over one table.
type ListQueryOptions struct {
	Table      string
	Columns    []string
	CountOnly  bool
	Conditions []Condition
	// OrConditions, when non-empty, are OR-ed together and AND-ed with Conditions.
	// Used for multi-column substring search (name OR description).
	OrConditions []Condition
	OrderBy      string
	OrderDir     string
	Limit        int
	Offset       int
}

// ListQueryOption mutates ListQueryOptions during construction.
type ListQueryOption func(*ListQueryOptions)

// NewListQueryOptions builds query options for the given table.
func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	options := &ListQueryOptions{
		Table:  table,
		Limit:  -1,
		Offset: -1,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithColumns sets the columns to select.
func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) { o.Columns = cols }
}

// WithCondition adds a single AND condition.
func WithCondition(cond Condition) ListQueryOption {
	return func(o *ListQueryOptions) { o.Conditions = append(o.Conditions, cond) }
}

// WithOrConditions adds conditions OR-ed together as one AND group.
func WithOrConditions(conds ...Condition) ListQueryOption {
	return func(o *ListQueryOptions) { o.OrConditions = append(o.OrConditions, conds...) }
}

// WithOrderBy sets the ordering column and direction.
func WithOrderBy(column, direction string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = column
		o.OrderDir = direction
	}
}

// WithLimit sets the limit. Accepts 0.
func WithLimit(limit int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if limit >= 0 {
			o.Limit = limit
		}
	}
}

// WithOffset sets the offset. Accepts 0.
func WithOffset(offset int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if offset >= 0 {
			o.Offset = offset
		}
	}
}

// WithCountOnly sets the query to count only.
func WithCountOnly() ListQueryOption {
	return func(o *ListQueryOptions) { o.CountOnly = true }
}

// BuildListQuery renders the options into a parameterized SQL string and args.
// All identifiers are sanitized via pgx.Identifier; values always travel as
// placeholders.
func BuildListQuery(o *ListQueryOptions) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, len(o.Conditions)+len(o.OrConditions))
	next := func() string {
		return fmt.Sprintf("$%d", len(args)+1)
	}

	sb.WriteString("SELECT ")
	if o.CountOnly {
		sb.WriteString("COUNT(*)")
	} else if len(o.Columns) == 0 {
		sb.WriteString("*")
	} else {
		cols := make([]string, len(o.Columns))
		for i, c := range o.Columns {
			cols[i] = sanitizeIdentifier(c)
		}
		sb.WriteString(strings.Join(cols, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(sanitizeIdentifier(o.Table))

	where := make([]string, 0, len(o.Conditions)+1)
	for _, c := range o.Conditions {
		where = append(where, fmt.Sprintf("%s %s %s", sanitizeIdentifier(c.Field), c.Type, next()))
		args = append(args, c.Value)
	}
	if len(o.OrConditions) > 0 {
		ors := make([]string, 0, len(o.OrConditions))
		for _, c := range o.OrConditions {
			ors = append(ors, fmt.Sprintf("%s %s %s", sanitizeIdentifier(c.Field), c.Type, next()))
			args = append(args, c.Value)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}

	if !o.CountOnly {
		if o.OrderBy != "" {
			dir := "DESC"
			if strings.EqualFold(o.OrderDir, "asc") {
				dir = "ASC"
			}
			sb.WriteString(" ORDER BY ")
			sb.WriteString(sanitizeIdentifier(o.OrderBy))
			sb.WriteString(" ")
			sb.WriteString(dir)
		}
		if o.Limit >= 0 {
			sb.WriteString(" LIMIT ")
			sb.WriteString(next())
			args = append(args, o.Limit)
		}
		if o.Offset >= 0 {
			sb.WriteString(" OFFSET ")
			sb.WriteString(next())
			args = append(args, o.Offset)
		}
	}

	return sb.String(), args
}

// sanitizeIdentifier quotes a single SQL identifier.
func sanitizeIdentifier(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}
