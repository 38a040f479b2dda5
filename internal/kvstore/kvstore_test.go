package kvstore

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestKV(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "state.db")
	if err := Migrate(path); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestGetMissing verifies a never-written key reads as absent without
// error.
func TestGetMissing(t *testing.T) {
	s := newTestKV(t)

	value, ok, err := s.Get(context.Background(), "workouts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || value != "" {
		t.Errorf("Get(missing) = %q/%v, want \"\"/false", value, ok)
	}
}

// TestPutGetOverwrite verifies a put value reads back and a second put
// replaces it whole.
func TestPutGetOverwrite(t *testing.T) {
	s := newTestKV(t)
	ctx := context.Background()

	if err := s.Put(ctx, "workouts", `[{"id":"1"}]`); err != nil {
		t.Fatalf("Put: %v", err)
	}
	value, ok, err := s.Get(ctx, "workouts")
	if err != nil || !ok {
		t.Fatalf("Get = %v/%v", ok, err)
	}
	if value != `[{"id":"1"}]` {
		t.Errorf("value = %q", value)
	}

	if err := s.Put(ctx, "workouts", `[]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, _ = s.Get(ctx, "workouts")
	if value != `[]` {
		t.Errorf("value after overwrite = %q, want []", value)
	}
}

// TestKeysIndependent verifies documents under different keys do not
// interfere.
func TestKeysIndependent(t *testing.T) {
	s := newTestKV(t)
	ctx := context.Background()

	s.Put(ctx, "workouts", `[1]`)
	s.Put(ctx, "@weight_entries", `[2]`)

	v1, _, _ := s.Get(ctx, "workouts")
	v2, _, _ := s.Get(ctx, "@weight_entries")
	if v1 != `[1]` || v2 != `[2]` {
		t.Errorf("values = %q/%q, want [1]/[2]", v1, v2)
	}
}

// TestMigrateIdempotent verifies running migrations twice on the same
// database is harmless.
func TestMigrateIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	if err := Migrate(path); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	if err := Migrate(path); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}
