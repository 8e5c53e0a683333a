package model_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nikbrunner/vs/internal/model"
	"github.com/nikbrunner/vs/internal/scroller"
)

func seededStore(n int) *model.Store {
	store := model.NewStore()
	store.Seed(n)
	return store
}

func TestNewItem(t *testing.T) {
	item := model.NewItem(model.NewItemParams{Index: 3, Text: "hello"})

	if item.ID == "" {
		t.Error("expected generated ID")
	}
	if item.Tags == nil {
		t.Error("expected non-nil tags")
	}
	if item.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if item.Index != 3 || item.Text != "hello" {
		t.Errorf("unexpected item %+v", item)
	}
}

func TestItem_JSONFieldNames(t *testing.T) {
	item := model.Item{
		ID:        "i1",
		Index:     7,
		Text:      "seven",
		Tags:      []string{"odd"},
		CreatedAt: time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
	}

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	for _, key := range []string{"id", "index", "text", "tags", "createdAt"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing JSON key %q in %s", key, data)
		}
	}
}

func TestStore_SeedAssignsContiguousIndices(t *testing.T) {
	store := seededStore(16)

	lo, hi, ok := store.Bounds()
	if !ok || lo != 1 || hi != 16 {
		t.Fatalf("bounds = (%d, %d, %v), want (1, 16, true)", lo, hi, ok)
	}
	for i, it := range store.Items {
		if it.Index != i+1 {
			t.Errorf("item %d has index %d", i, it.Index)
		}
		if it.Text != model.GeneratedText(it.Index) {
			t.Errorf("item %d has text %q", i, it.Text)
		}
	}
}

func TestStore_BoundsEmpty(t *testing.T) {
	if _, _, ok := model.NewStore().Bounds(); ok {
		t.Error("expected no bounds for empty store")
	}
}

func TestStore_GetItemByIndex(t *testing.T) {
	store := seededStore(5)

	if got := store.GetItemByIndex(3); got == nil || got.Text != "item 3" {
		t.Errorf("GetItemByIndex(3) = %+v", got)
	}
	if store.GetItemByIndex(0) != nil || store.GetItemByIndex(6) != nil {
		t.Error("expected nil outside bounds")
	}
	id := store.Items[1].ID
	if got := store.GetItemByID(id); got == nil || got.Index != 2 {
		t.Errorf("GetItemByID = %+v", got)
	}
}

func TestStore_Fetch(t *testing.T) {
	store := seededStore(16)
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
		{"fully before", -20, 5, 0, 0},
		{"fully after", 17, 9, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Fetch(ctx, tt.start, tt.count)
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

func TestStore_FetchReturnsCopy(t *testing.T) {
	store := seededStore(3)

	got, err := store.Fetch(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got[0].Text = "changed"
	if store.Items[0].Text != "item 1" {
		t.Error("fetch must not alias store items")
	}
}

func TestStore_ImportMerge_SkipsDuplicateText(t *testing.T) {
	store := seededStore(2)

	added, skipped := store.ImportMerge([]model.Item{
		model.NewItem(model.NewItemParams{Text: "item 1"}),
		model.NewItem(model.NewItemParams{Text: "fresh"}),
	})

	if added != 1 || skipped != 1 {
		t.Errorf("added=%d skipped=%d, want 1 and 1", added, skipped)
	}
	if last := store.Items[len(store.Items)-1]; last.Text != "fresh" || last.Index != 3 {
		t.Errorf("unexpected appended item %+v", last)
	}
}

func TestStore_Normalize(t *testing.T) {
	store := &model.Store{Items: []model.Item{
		{ID: "c", Index: 9, Text: "c"},
		{ID: "a", Index: 4, Text: "a"},
		{ID: "b", Index: 6, Text: "b"},
	}}

	store.Normalize()

	want := []string{"a", "b", "c"}
	for i, it := range store.Items {
		if it.ID != want[i] || it.Index != 4+i {
			t.Errorf("item %d = %+v", i, it)
		}
	}
}

func TestStore_AsScrollerSource(t *testing.T) {
	store := seededStore(16)
	s := scroller.Settings{MinIndex: 1, MaxIndex: 16, StartIndex: 1, ItemHeight: 20, Amount: 5, Tolerance: 2}

	c, err := scroller.NewController[model.Item](s, store, scroller.WithIndexFunc(model.ItemIndex))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w, err := c.OnScrollPositionChange(context.Background(), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Data) != 9 || w.Data[0].Index != 4 {
		t.Errorf("window data = %d items from %d", len(w.Data), w.Data[0].Index)
	}
	if w.TopPaddingHeight != 60 || w.BottomPaddingHeight != 80 {
		t.Errorf("padding = %d/%d, want 60/80", w.TopPaddingHeight, w.BottomPaddingHeight)
	}
}
