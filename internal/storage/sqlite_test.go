package storage_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/vs/internal/exporter"
	"github.com/nikbrunner/vs/internal/importer"
	"github.com/nikbrunner/vs/internal/model"
	"github.com/nikbrunner/vs/internal/scroller"
	"github.com/nikbrunner/vs/internal/storage"
)

func openSQLite(t *testing.T, name string) *storage.SQLiteStorage {
	t.Helper()
	s, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seeded(n int) *model.Store {
	store := model.NewStore()
	store.Seed(n)
	return store
}

func TestSQLiteStorage_SaveAndLoad(t *testing.T) {
	s := openSQLite(t, "items.db")

	now := time.Now().Truncate(time.Second) // SQLite RFC3339 loses sub-second precision

	store := &model.Store{
		Items: []model.Item{
			{ID: "i1", Index: 1, Text: "first", Tags: []string{"a", "b"}, CreatedAt: now},
			{ID: "i2", Index: 2, Text: "second", Tags: []string{}, CreatedAt: now},
		},
	}

	if err := s.Save(store); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if len(loaded.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(loaded.Items))
	}
	if loaded.Items[0].Text != "first" {
		t.Errorf("expected text 'first', got %q", loaded.Items[0].Text)
	}
	if len(loaded.Items[0].Tags) != 2 {
		t.Errorf("expected 2 tags, got %d", len(loaded.Items[0].Tags))
	}
	if !loaded.Items[1].CreatedAt.Equal(now) {
		t.Errorf("expected created_at %v, got %v", now, loaded.Items[1].CreatedAt)
	}
}

func TestSQLiteStorage_EmptyDatabase(t *testing.T) {
	s := openSQLite(t, "empty.db")

	store, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load empty db: %v", err)
	}
	if store.Len() != 0 {
		t.Error("expected empty store")
	}

	if _, _, ok, err := s.Bounds(context.Background()); err != nil || ok {
		t.Errorf("Bounds on empty db = ok %v, err %v", ok, err)
	}
}

func TestSQLiteStorage_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "items.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage with nested dir: %v", err)
	}
	defer s.Close()

	if err := s.Save(model.NewStore()); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
}

func TestSQLiteStorage_MigratesToCurrentVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	s.Close()

	// Reopening must not rerun migrations.
	s, err = storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen storage: %v", err)
	}
	defer s.Close()

	version, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("failed to read version: %v", err)
	}
	if version != 2 {
		t.Errorf("expected schema version 2, got %d", version)
	}
}

func TestSQLiteStorage_NilTags(t *testing.T) {
	s := openSQLite(t, "nil.db")

	store := &model.Store{
		Items: []model.Item{
			{ID: "i1", Index: 1, Text: "untagged", Tags: nil, CreatedAt: time.Now()},
		},
	}

	if err := s.Save(store); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if loaded.Items[0].Tags == nil {
		t.Error("expected tags to be empty slice, not nil")
	}
}

func TestSQLiteStorage_SaveReplacesContents(t *testing.T) {
	s := openSQLite(t, "replace.db")

	if err := s.Save(seeded(5)); err != nil {
		t.Fatalf("failed to save initial: %v", err)
	}

	updated := &model.Store{
		Items: []model.Item{{ID: "x", Index: 1, Text: "Updated"}},
	}
	if err := s.Save(updated); err != nil {
		t.Fatalf("failed to save updated: %v", err)
	}

	loaded, _ := s.Load()
	if loaded.Len() != 1 || loaded.Items[0].Text != "Updated" {
		t.Error("update did not work correctly")
	}
}

func TestSQLiteStorage_DuplicateIndexRollsBack(t *testing.T) {
	s := openSQLite(t, "rollback.db")

	if err := s.Save(seeded(3)); err != nil {
		t.Fatalf("failed to save initial: %v", err)
	}

	bad := &model.Store{
		Items: []model.Item{
			{ID: "a", Index: 1, Text: "a"},
			{ID: "b", Index: 1, Text: "b"},
		},
	}
	if err := s.Save(bad); err == nil {
		t.Fatal("expected unique index violation")
	}

	loaded, _ := s.Load()
	if loaded.Len() != 3 {
		t.Errorf("expected original 3 items after rollback, got %d", loaded.Len())
	}
}

func TestSQLiteStorage_Fetch(t *testing.T) {
	s := openSQLite(t, "fetch.db")
	if err := s.Save(seeded(16)); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		name      string
		start     int
		count     int
		wantFirst int
		wantLen   int
	}{
		{"inside", 4, 9, 4, 9},
		{"before start", -1, 9, 1, 7},
		{"past end", 10, 9, 10, 7},
		{"fully after", 17, 9, 0, 0},
		{"zero count", 3, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Fetch(ctx, tt.start, tt.count)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && got[0].Index != tt.wantFirst {
				t.Errorf("first index = %d, want %d", got[0].Index, tt.wantFirst)
			}
		})
	}
}

func TestSQLiteStorage_Bounds(t *testing.T) {
	s := openSQLite(t, "bounds.db")
	if err := s.Save(seeded(16)); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	lo, hi, ok, err := s.Bounds(context.Background())
	if err != nil || !ok || lo != 1 || hi != 16 {
		t.Errorf("Bounds = (%d, %d, %v, %v), want (1, 16, true, nil)", lo, hi, ok, err)
	}
}

func TestSQLiteStorage_DrivesController(t *testing.T) {
	s := openSQLite(t, "controller.db")
	if err := s.Save(seeded(16)); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	settings := scroller.Settings{MinIndex: 1, MaxIndex: 16, StartIndex: 1, ItemHeight: 20, Amount: 5, Tolerance: 2}
	c, err := scroller.NewController[model.Item](settings, s, scroller.WithIndexFunc(model.ItemIndex))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, err := c.OnScrollPositionChange(context.Background(), 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Anchor 14 clips the batch to 14..16.
	if len(w.Data) != 3 || w.Data[0].Index != 14 {
		t.Errorf("window = %d items from index %d", len(w.Data), w.Index)
	}
	if w.BottomPaddingHeight != 0 {
		t.Errorf("bottom padding = %d, want 0", w.BottomPaddingHeight)
	}
}

// Integration tests for import/export with SQLite storage

func TestSQLiteStorage_ImportHTML(t *testing.T) {
	s := openSQLite(t, "import.db")

	html := `<!DOCTYPE html>
<html><body>
<ol>
  <li>alpha</li>
  <li><a href="https://go.dev">Go Dev</a></li>
  <li>gamma</li>
</ol>
</body></html>`

	items, err := importer.ParseHTML(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse HTML: %v", err)
	}

	store := model.NewStore()
	added, skipped := store.ImportMerge(items)

	if added != 3 {
		t.Errorf("expected 3 items added, got %d", added)
	}
	if skipped != 0 {
		t.Errorf("expected 0 skipped, got %d", skipped)
	}

	if err := s.Save(store); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	expected := []string{"alpha", "Go Dev", "gamma"}
	if loaded.Len() != len(expected) {
		t.Fatalf("expected %d items, got %d", len(expected), loaded.Len())
	}
	for i, text := range expected {
		if loaded.Items[i].Text != text || loaded.Items[i].Index != i+1 {
			t.Errorf("item %d = %+v, want %q", i, loaded.Items[i], text)
		}
	}
}

func TestSQLiteStorage_ImportExportRoundtrip(t *testing.T) {
	s := openSQLite(t, "roundtrip.db")

	store := seeded(4)
	store.Items[2].Text = "three & <more>"
	if err := s.Save(store); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	html := exporter.ExportHTML(loaded)
	if !strings.Contains(html, "three &amp; &lt;more&gt;") {
		t.Error("expected escaped text in export")
	}

	items, err := importer.ParseHTML(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse export: %v", err)
	}

	fresh := model.NewStore()
	fresh.ImportMerge(items)
	if fresh.Len() != 4 {
		t.Fatalf("expected 4 items after roundtrip, got %d", fresh.Len())
	}
	for i := range fresh.Items {
		if fresh.Items[i].Text != loaded.Items[i].Text {
			t.Errorf("item %d: got %q, want %q", i, fresh.Items[i].Text, loaded.Items[i].Text)
		}
	}
}
