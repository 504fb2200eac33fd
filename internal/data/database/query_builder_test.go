package database

import (
	"reflect"
	"testing"
)

func TestBuildListQuery_Defaults(t *testing.T) {
	opts := NewListQueryOptions("categories")
	sql, args := BuildListQuery(opts)

	want := `SELECT * FROM "categories"`
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuildListQuery_FullListQuery(t *testing.T) {
	opts := NewListQueryOptions("products",
		WithColumns("id", "name", "price"),
		WithCondition(WhereCond("category_id", Equal, "cat-1")),
		WithOrderBy("created_at", "asc"),
		WithLimit(20),
		WithOffset(40),
	)
	sql, args := BuildListQuery(opts)

	want := `SELECT "id", "name", "price" FROM "products" WHERE "category_id" = $1 ORDER BY "created_at" ASC LIMIT $2 OFFSET $3`
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	wantArgs := []any{"cat-1", 20, 40}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestBuildListQuery_OrConditionsGrouped(t *testing.T) {
	opts := NewListQueryOptions("products",
		WithCondition(WhereCond("category_id", Equal, "cat-1")),
		WithOrConditions(
			WhereCond("name", ILike, "%chair%"),
			WhereCond("description", ILike, "%chair%"),
		),
	)
	sql, args := BuildListQuery(opts)

	want := `SELECT * FROM "products" WHERE "category_id" = $1 AND ("name" ILIKE $2 OR "description" ILIKE $3)`
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 3 {
		t.Errorf("len(args) = %d, want 3", len(args))
	}
}

func TestBuildListQuery_CountOnly(t *testing.T) {
	opts := NewListQueryOptions("contacts",
		WithCountOnly(),
		WithCondition(WhereCond("status", Equal, "new")),
		WithOrderBy("created_at", "desc"),
		WithLimit(20),
		WithOffset(0),
	)
	sql, args := BuildListQuery(opts)

	// Count queries drop ordering and paging.
	want := `SELECT COUNT(*) FROM "contacts" WHERE "status" = $1`
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	wantArgs := []any{"new"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestBuildListQuery_ZeroLimitKept(t *testing.T) {
	opts := NewListQueryOptions("categories", WithLimit(0))
	sql, args := BuildListQuery(opts)

	want := `SELECT * FROM "categories" LIMIT $1`
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{0}) {
		t.Errorf("args = %v, want [0]", args)
	}
}

func TestBuildListQuery_IdentifierQuoting(t *testing.T) {
	opts := NewListQueryOptions(`users"; DROP TABLE users; --`,
		WithOrderBy(`name" DESC; --`, "asc"),
	)
	sql, _ := BuildListQuery(opts)

	// Hostile identifiers are quoted, never spliced in raw.
	want := `SELECT * FROM "users""; DROP TABLE users; --" ORDER BY "name"" DESC; --" ASC`
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestBuildListQuery_UnknownDirectionDefaultsDesc(t *testing.T) {
	opts := NewListQueryOptions("projects", WithOrderBy("name", "sideways"))
	sql, _ := BuildListQuery(opts)

	want := `SELECT * FROM "projects" ORDER BY "name" DESC`
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}
