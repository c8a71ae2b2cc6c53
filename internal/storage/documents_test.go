package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func exerciseStore(t *testing.T, ds DocumentStore) {
	t.Helper()
	ctx := context.Background()

	var got sample
	if err := Load(ctx, ds, "u1", CollectionPrograms, &got); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load on empty store: err = %v, want ErrNotFound", err)
	}

	if err := Save(ctx, ds, "u1", CollectionPrograms, sample{Name: "a", Count: 1}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Save(ctx, ds, "u1", CollectionPrograms, sample{Name: "b", Count: 2}); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	if err := Load(ctx, ds, "u1", CollectionPrograms, &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "b" || got.Count != 2 {
		t.Errorf("loaded = %+v, want {b 2}", got)
	}

	// Other users and collections are isolated.
	if _, err := ds.GetDocument(ctx, "u2", CollectionPrograms); !errors.Is(err, ErrNotFound) {
		t.Errorf("u2 programs: err = %v, want ErrNotFound", err)
	}
	if _, err := ds.GetDocument(ctx, "u1", CollectionNutrition); !errors.Is(err, ErrNotFound) {
		t.Errorf("u1 nutrition: err = %v, want ErrNotFound", err)
	}

	docs, err := ds.ListDocuments(ctx, "u1")
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 1 || docs[0].Collection != CollectionPrograms || docs[0].Size == 0 {
		t.Errorf("ListDocuments = %+v, want one programs document", docs)
	}
}

// TestMemoryStore verifies the in-memory store round-trips and overwrites documents.
func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

// TestMemoryStoreFail verifies injected write failures surface to the caller.
func TestMemoryStoreFail(t *testing.T) {
	m := NewMemory()
	boom := errors.New("boom")
	m.SetFail(boom)
	if err := m.SetDocument(context.Background(), "u", CollectionHistory, []byte("[]")); !errors.Is(err, boom) {
		t.Errorf("SetDocument err = %v, want boom", err)
	}
	m.SetFail(nil)
	if err := m.SetDocument(context.Background(), "u", CollectionHistory, []byte("[]")); err != nil {
		t.Errorf("SetDocument after reset: %v", err)
	}
}

// TestLocalStore verifies the SQLite store against the same contract.
func TestLocalStore(t *testing.T) {
	l, err := OpenLocal(":memory:")
	if err != nil {
		t.Fatalf("OpenLocal: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	exerciseStore(t, l)
}

// TestLocalStoreReopen verifies documents survive closing and reopening the file.
func TestLocalStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "liftlog.db")
	l, err := OpenLocal(path)
	if err != nil {
		t.Fatalf("OpenLocal: %v", err)
	}
	if err := Save(context.Background(), l, "u", CollectionHistory, []string{"x"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	l.Close()

	l, err = OpenLocal(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer l.Close()

	var got []string
	if err := Load(context.Background(), l, "u", CollectionHistory, &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0] != "x" {
		t.Errorf("got %v, want [x]", got)
	}
}
