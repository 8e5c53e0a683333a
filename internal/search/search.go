package search

import (
	"github.com/nikbrunner/vs/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Item           *model.Item
	MatchedIndexes []int
	Score          int
}

// itemTexts implements fuzzy.Source for an item slice.
type itemTexts []*model.Item

func (it itemTexts) String(i int) string {
	return it[i].Text
}

func (it itemTexts) Len() int {
	return len(it)
}

// FuzzySearchItems searches all items by text using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchItems(store *model.Store, query string) []SearchResult {
	if query == "" {
		return nil
	}

	items := make(itemTexts, len(store.Items))
	for i := range store.Items {
		items[i] = &store.Items[i]
	}

	matches := fuzzy.FindFrom(query, items)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Item:           items[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

// BestIndex returns the index of the best match for query.
func BestIndex(store *model.Store, query string) (int, bool) {
	results := FuzzySearchItems(store, query)
	if len(results) == 0 {
		return 0, false
	}
	return results[0].Item.Index, true
}
