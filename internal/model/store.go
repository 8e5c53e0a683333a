package model

import (
	"context"
	"sort"

	"github.com/nikbrunner/vs/internal/scroller"
)

// DefaultFirstIndex is the index given to the first item of an empty store.
const DefaultFirstIndex = 1

// Store holds every item, kept sorted by Index with no gaps.
type Store struct {
	Items []Item `json:"items"`
}

// NewStore creates an empty Store with an initialized slice.
func NewStore() *Store {
	return &Store{
		Items: []Item{},
	}
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.Items)
}

// Bounds returns the lowest and highest index. ok is false for an empty store.
func (s *Store) Bounds() (minIndex, maxIndex int, ok bool) {
	if len(s.Items) == 0 {
		return 0, 0, false
	}
	return s.Items[0].Index, s.Items[len(s.Items)-1].Index, true
}

// GetItemByIndex finds an item by index, returns nil if not found.
func (s *Store) GetItemByIndex(index int) *Item {
	pos, ok := s.position(index)
	if !ok {
		return nil
	}
	return &s.Items[pos]
}

// GetItemByID finds an item by ID, returns nil if not found.
func (s *Store) GetItemByID(id string) *Item {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i]
		}
	}
	return nil
}

// Append adds an item after the last one, assigning it the next index.
func (s *Store) Append(item Item) Item {
	item.Index = s.nextIndex()
	s.Items = append(s.Items, item)
	return item
}

func (s *Store) nextIndex() int {
	if _, hi, ok := s.Bounds(); ok {
		return hi + 1
	}
	return DefaultFirstIndex
}

// Seed appends n generated items and returns how many were added.
func (s *Store) Seed(n int) int {
	added := 0
	for ; added < n; added++ {
		next := s.nextIndex()
		s.Append(NewItem(NewItemParams{Text: GeneratedText(next)}))
	}
	return added
}

// HasText reports whether an item with the exact text exists.
func (s *Store) HasText(text string) bool {
	for _, it := range s.Items {
		if it.Text == text {
			return true
		}
	}
	return false
}

// ImportMerge appends items whose text is not already present.
// Returns counts of added and skipped items.
func (s *Store) ImportMerge(items []Item) (added, skipped int) {
	for _, it := range items {
		if s.HasText(it.Text) {
			skipped++
			continue
		}
		s.Append(it)
		added++
	}
	return added, skipped
}

// Normalize sorts items by index and renumbers them contiguously from the
// first index.
func (s *Store) Normalize() {
	if len(s.Items) == 0 {
		return
	}
	sort.SliceStable(s.Items, func(i, j int) bool {
		return s.Items[i].Index < s.Items[j].Index
	})
	first := s.Items[0].Index
	for i := range s.Items {
		s.Items[i].Index = first + i
	}
}

// Fetch returns up to count items starting at index start, clipped to the
// store's bounds. Store satisfies scroller.DataSource.
func (s *Store) Fetch(ctx context.Context, start, count int) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lo, hi, ok := s.Bounds()
	if !ok {
		return nil, nil
	}
	lo, hi = scroller.ClipRange(start, count, lo, hi)
	if lo > hi {
		return nil, nil
	}
	first := s.Items[0].Index
	out := make([]Item, hi-lo+1)
	copy(out, s.Items[lo-first:hi-first+1])
	return out, nil
}

func (s *Store) position(index int) (int, bool) {
	lo, hi, ok := s.Bounds()
	if !ok || index < lo || index > hi {
		return 0, false
	}
	return index - lo, true
}

var _ scroller.DataSource[Item] = (*Store)(nil)
