package scroller

import (
	"context"
	"errors"
	"fmt"
)

// ErrDataSource is matched by every DataSourceError.
var ErrDataSource = errors.New("data source contract violation")

// DataSource returns up to count consecutive items starting at start.
// Results must be ascending, gap free and clipped to the valid index range;
// start may lie outside that range.
type DataSource[T any] interface {
	Fetch(ctx context.Context, start, count int) ([]T, error)
}

// DataSourceFunc adapts a function into a DataSource.
type DataSourceFunc[T any] func(ctx context.Context, start, count int) ([]T, error)

// Fetch calls f.
func (f DataSourceFunc[T]) Fetch(ctx context.Context, start, count int) ([]T, error) {
	return f(ctx, start, count)
}

// RangeSource generates items for every index in [Min, Max].
type RangeSource[T any] struct {
	Min, Max int
	Item     func(index int) T
}

// Fetch returns the items for [max(Min,start), min(start+count-1, Max)].
func (r RangeSource[T]) Fetch(ctx context.Context, start, count int) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lo, hi := ClipRange(start, count, r.Min, r.Max)
	if lo > hi || r.Item == nil {
		return nil, nil
	}
	items := make([]T, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		items = append(items, r.Item(i))
	}
	return items, nil
}

// ClipRange intersects the request [start, start+count-1] with [minIndex,
// maxIndex]. The result is empty when lo > hi.
func ClipRange(start, count, minIndex, maxIndex int) (lo, hi int) {
	return max(minIndex, start), min(start+count-1, maxIndex)
}

// DataSourceError describes a rejected batch.
type DataSourceError struct {
	Start  int
	Count  int
	Reason string
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("%s: fetch(%d, %d): %s", ErrDataSource, e.Start, e.Count, e.Reason)
}

// Is makes errors.Is(err, ErrDataSource) hold.
func (e *DataSourceError) Is(target error) bool {
	return target == ErrDataSource
}

// checkBatch enforces the DataSource contract. Without an index function
// only the length can be verified. A batch that ends early is an end of list
// result, not a violation.
func checkBatch[T any](s Settings, start, count int, data []T, indexOf func(T) int) error {
	fail := func(format string, args ...any) error {
		return &DataSourceError{Start: start, Count: count, Reason: fmt.Sprintf(format, args...)}
	}
	if len(data) > count {
		return fail("returned %d items", len(data))
	}
	if indexOf == nil || len(data) == 0 {
		return nil
	}
	lo, hi := ClipRange(start, count, s.MinIndex, s.MaxIndex)
	if first := indexOf(data[0]); first != lo {
		return fail("first index %d, want %d", first, lo)
	}
	for i, item := range data {
		idx := indexOf(item)
		if idx > hi {
			return fail("index %d outside [%d, %d]", idx, lo, hi)
		}
		if i > 0 {
			if prev := indexOf(data[i-1]); idx != prev+1 {
				return fail("index %d follows %d", idx, prev)
			}
		}
	}
	return nil
}
