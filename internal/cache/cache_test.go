// SPDX-License-Identifier: MPL-2.0

package cache

import "testing"

func TestSum_DistinguishesContent(t *testing.T) {
	t.Parallel()

	a := Sum("module A;")
	b := Sum("module B;")
	if a == b {
		t.Errorf("distinct sources must not collide")
	}
	if a != Sum("module A;") {
		t.Errorf("key must be deterministic")
	}
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	key := Sum("module A;")
	if _, ok := store.Get(key); ok {
		t.Fatalf("unexpected hit on empty store")
	}

	if err := store.Put(key, "rendered"); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok := store.Get(key)
	if !ok || got != "rendered" {
		t.Errorf("Get = (%q, %v), want (rendered, true)", got, ok)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := store.Get(key); ok {
		t.Errorf("entry survived Clear")
	}
}

func TestStore_NilIsDisabled(t *testing.T) {
	t.Parallel()

	var store *Store
	if _, ok := store.Get(Sum("x")); ok {
		t.Errorf("nil store must miss")
	}
	if err := store.Put(Sum("x"), "y"); err != nil {
		t.Errorf("nil store Put must be a no-op, got %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Errorf("nil store Clear must be a no-op, got %v", err)
	}
}
