package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"tasklist-service/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "database.json"))
}

func TestLoadMissingFile(t *testing.T) {
	st := newTestStore(t)

	doc, err := st.Load()
	if err != nil {
		t.Fatalf("Load on missing file should not error, got %v", err)
	}
	if doc.Users == nil || doc.Tasks == nil {
		t.Error("Expected non-nil empty slices for a fresh document")
	}
	if len(doc.Users) != 0 || len(doc.Tasks) != 0 {
		t.Errorf("Expected empty document, got %d users, %d tasks", len(doc.Users), len(doc.Tasks))
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	st := newTestStore(t)

	err := st.Update(func(doc *models.Document) error {
		doc.Users = append(doc.Users, models.User{Username: "alice", Password: "hash"})
		doc.Tasks = append(doc.Tasks, models.Task{ID: 42, Task: "buy milk", User: "alice"})
		return nil
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	doc, err := st.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(doc.Users) != 1 || doc.Users[0].Username != "alice" {
		t.Errorf("Expected user alice, got %+v", doc.Users)
	}
	if len(doc.Tasks) != 1 || doc.Tasks[0].Task != "buy milk" || doc.Tasks[0].ID != 42 {
		t.Errorf("Expected task round trip, got %+v", doc.Tasks)
	}
}

func TestUpdateAbortsOnError(t *testing.T) {
	st := newTestStore(t)

	if err := st.Update(func(doc *models.Document) error {
		doc.Tasks = append(doc.Tasks, models.Task{ID: 1, Task: "keep", User: "alice"})
		return nil
	}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	boom := errors.New("boom")
	err := st.Update(func(doc *models.Document) error {
		doc.Tasks = nil
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected fn error to propagate, got %v", err)
	}

	doc, err := st.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(doc.Tasks) != 1 {
		t.Errorf("Aborted update must not be persisted, got %d tasks", len(doc.Tasks))
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	st := New(path)
	if _, err := st.Load(); err == nil {
		t.Error("Expected an error loading a corrupt store file")
	}
}

func TestSavePrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	st := New(path)

	if err := st.Update(func(doc *models.Document) error { return nil }); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read store file: %v", err)
	}
	if !strings.Contains(string(data), "\n") {
		t.Error("Expected indented output in the store file")
	}
	if !strings.Contains(string(data), `"users"`) || !strings.Contains(string(data), `"tasks"`) {
		t.Errorf("Unexpected document shape: %s", data)
	}
}

func TestNextTaskIDMonotonic(t *testing.T) {
	st := newTestStore(t)

	seen := make(map[int64]bool)
	prev := int64(0)
	for i := 0; i < 1000; i++ {
		id := st.NextTaskID()
		if id <= prev {
			t.Fatalf("Ids must strictly increase: %d after %d", id, prev)
		}
		if seen[id] {
			t.Fatalf("Duplicate id %d", id)
		}
		seen[id] = true
		prev = id
	}
}

func TestNextTaskIDSeededFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")

	// A stored id far in the future, as if written under a skewed clock
	future := int64(9999999999999)
	first := New(path)
	if err := first.Update(func(doc *models.Document) error {
		doc.Tasks = append(doc.Tasks, models.Task{ID: future, Task: "old", User: "alice"})
		return nil
	}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	st := New(path)
	if id := st.NextTaskID(); id <= future {
		t.Errorf("Expected id above stored maximum %d, got %d", future, id)
	}
}

func TestConcurrentUpdatesNoneLost(t *testing.T) {
	st := newTestStore(t)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.Update(func(doc *models.Document) error {
				doc.Tasks = append(doc.Tasks, models.Task{
					ID:   st.NextTaskID(),
					Task: "concurrent",
					User: "alice",
				})
				return nil
			})
		}()
	}
	wg.Wait()

	doc, err := st.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(doc.Tasks) != writers {
		t.Errorf("Expected %d tasks after concurrent adds, got %d", writers, len(doc.Tasks))
	}
}
