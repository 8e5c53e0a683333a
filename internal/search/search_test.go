package search

import (
	"testing"

	"github.com/nikbrunner/vs/internal/model"
)

func storeWith(texts ...string) *model.Store {
	store := model.NewStore()
	for _, text := range texts {
		store.Append(model.NewItem(model.NewItemParams{Text: text}))
	}
	return store
}

func TestFuzzySearchItems_EmptyQuery(t *testing.T) {
	store := storeWith("GitHub")

	results := FuzzySearchItems(store, "")

	if len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFuzzySearchItems_ExactMatch(t *testing.T) {
	store := storeWith("GitHub", "GitLab")

	results := FuzzySearchItems(store, "GitHub")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Item.Text != "GitHub" {
		t.Errorf("expected GitHub, got %s", results[0].Item.Text)
	}
}

func TestFuzzySearchItems_FuzzyMatch(t *testing.T) {
	store := storeWith("TanStack Router", "React Router")

	// "tanrou" should fuzzy match "TanStack Router"
	results := FuzzySearchItems(store, "tanrou")

	if len(results) < 1 {
		t.Fatalf("expected at least 1 result for 'tanrou', got %d", len(results))
	}
	if results[0].Item.Text != "TanStack Router" {
		t.Errorf("expected TanStack Router as first result, got %s", results[0].Item.Text)
	}
}

func TestFuzzySearchItems_MatchedIndexes(t *testing.T) {
	store := storeWith("item 12")

	results := FuzzySearchItems(store, "i12")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if len(results[0].MatchedIndexes) != 3 {
		t.Errorf("expected 3 matched indexes, got %v", results[0].MatchedIndexes)
	}
}

func TestFuzzySearchItems_NoMatch(t *testing.T) {
	store := model.NewStore()
	store.Seed(16)

	if results := FuzzySearchItems(store, "zzz"); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestBestIndex(t *testing.T) {
	store := storeWith("alpha", "beta", "gamma")

	index, ok := BestIndex(store, "gam")
	if !ok || index != 3 {
		t.Errorf("BestIndex = (%d, %v), want (3, true)", index, ok)
	}

	if _, ok := BestIndex(store, "xyz"); ok {
		t.Error("expected no match")
	}
}
