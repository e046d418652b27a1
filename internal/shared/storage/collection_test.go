package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	scouterrors "github.com/reshetovitsme/product-scout/internal/shared/errors"
)

type record struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func newTestCollection(t *testing.T) *Collection[record] {
	t.Helper()
	c, err := NewCollection(t.TempDir(), "records", func(r *record) string { return r.ID })
	if err != nil {
		t.Fatalf("new collection: %v", err)
	}
	return c
}

func TestCollectionCRUD(t *testing.T) {
	c := newTestCollection(t)

	for _, r := range []record{{ID: "b", Count: 2}, {ID: "a", Count: 1}} {
		if err := c.Save(&r); err != nil {
			t.Fatalf("save %s: %v", r.ID, err)
		}
	}

	got, err := c.Get("a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(record{ID: "a", Count: 1}, *got); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}

	all, err := c.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	want := []*record{{ID: "a", Count: 1}, {ID: "b", Count: 2}}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Errorf("All mismatch (-want +got):\n%s", diff)
	}

	if err := c.Delete("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.Get("a"); !errors.Is(err, scouterrors.ErrNotFound) {
		t.Errorf("Get after delete: got %v, want ErrNotFound", err)
	}
	if err := c.Delete("a"); !errors.Is(err, scouterrors.ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestCollectionRejectsPathIDs(t *testing.T) {
	c := newTestCollection(t)

	for _, id := range []string{"", "../escape", "a/b", ".hidden"} {
		if err := c.Save(&record{ID: id}); !errors.Is(err, scouterrors.ErrInvalidInput) {
			t.Errorf("Save(%q): got %v, want ErrInvalidInput", id, err)
		}
		if _, err := c.Get(id); !errors.Is(err, scouterrors.ErrNotFound) {
			t.Errorf("Get(%q): got %v, want ErrNotFound", id, err)
		}
	}
}

func TestCollectionSkipsCorruptFiles(t *testing.T) {
	c := newTestCollection(t)
	if err := c.Save(&record{ID: "ok"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := os.WriteFile(filepath.Join(c.dir, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	all, err := c.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 1 || all[0].ID != "ok" {
		t.Errorf("All = %+v, want only the valid record", all)
	}
}

func TestCollectionUpdateIsSerialized(t *testing.T) {
	c := newTestCollection(t)
	if err := c.Save(&record{ID: "counter"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Update("counter", func(r *record) error {
				r.Count++
				return nil
			}); err != nil {
				t.Errorf("update: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := c.Get("counter")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Count != 20 {
		t.Errorf("Count = %d, want 20", got.Count)
	}
}

func TestCollectionUpdateMissing(t *testing.T) {
	c := newTestCollection(t)
	_, err := c.Update("nope", func(*record) error { return nil })
	if !errors.Is(err, scouterrors.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
