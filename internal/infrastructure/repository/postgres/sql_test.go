package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("sql.ErrNoRows must be not-found")
	}
	if !isNotFound(fmt.Errorf("get row: %w", sql.ErrNoRows)) {
		t.Fatal("wrapped sql.ErrNoRows must be not-found")
	}
	if isNotFound(errors.New("connection refused")) {
		t.Fatal("unrelated error must not be not-found")
	}
	if isNotFound(nil) {
		t.Fatal("nil must not be not-found")
	}
}

func TestIntPtrNullInt64RoundTrip(t *testing.T) {
	t.Parallel()

	if got := intPtrToNullInt64(nil); got.Valid {
		t.Fatalf("intPtrToNullInt64(nil) = %+v, want invalid", got)
	}
	v := 4
	got := intPtrToNullInt64(&v)
	if !got.Valid || got.Int64 != 4 {
		t.Fatalf("intPtrToNullInt64(&4) = %+v", got)
	}

	if back := nullInt64ToIntPtr(got); back == nil || *back != 4 {
		t.Fatalf("nullInt64ToIntPtr(%+v) = %v", got, back)
	}
	if back := nullInt64ToIntPtr(sql.NullInt64{}); back != nil {
		t.Fatalf("nullInt64ToIntPtr(invalid) = %v, want nil", back)
	}
}
