package querybuilder

import "testing"

func TestSelectBuilder_WhereOrderLimit(t *testing.T) {
	t.Parallel()

	query, args, err := Select("*").From("matches").
		Where(Eq("status", "COMPLETED"), IsNull("deleted_at")).
		OrderBy("kickoff_at DESC", "id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT * FROM matches WHERE status = $1 AND deleted_at IS NULL ORDER BY kickoff_at DESC, id LIMIT 10"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 1 || args[0] != "COMPLETED" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelectBuilder_InCondition(t *testing.T) {
	t.Parallel()

	query, args, err := Select("public_id").From("players").
		Where(In("public_id", []any{"p-1", "p-2"})).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT public_id FROM players WHERE public_id IN ($1, $2)"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertBuilder_SuffixPlaceholders(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("goals").
		Columns("match_public_id", "player_public_id", "minute").
		Values("m-1", "p-1", 42).
		Suffix("RETURNING public_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	want := "INSERT INTO goals (match_public_id, player_public_id, minute) VALUES ($1, $2, $3) RETURNING public_id"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestUpdateBuilder_SetAndSetExpr(t *testing.T) {
	t.Parallel()

	query, args, err := Update("matches").
		Set("home_score", 2).
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "m-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update: %v", err)
	}

	want := "UPDATE matches SET home_score = $1, updated_at = NOW() WHERE public_id = $2"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestDeleteBuilder_RequiresWhere(t *testing.T) {
	t.Parallel()

	if _, _, err := DeleteFrom("forum_posts").ToSQL(); err == nil {
		t.Fatal("expected error for delete without where")
	}

	query, args, err := DeleteFrom("coach_assignments").
		Where(Eq("match_public_id", "m-1"), Eq("public_id", "ca-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete: %v", err)
	}

	want := "DELETE FROM coach_assignments WHERE match_public_id = $1 AND public_id = $2"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertModel_UsesDBTags(t *testing.T) {
	t.Parallel()

	type row struct {
		PublicID string `db:"public_id"`
		Body     string `db:"body"`
		Ignored  string `db:"-"`
	}

	query, args, err := InsertModel("forum_posts", row{PublicID: "fp-1", Body: "hello"}, "")
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}

	want := "INSERT INTO forum_posts (public_id, body) VALUES ($1, $2)"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}
