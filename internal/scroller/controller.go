package scroller

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrAlreadyMounted is returned by a second Mount.
var ErrAlreadyMounted = errors.New("scroller already mounted")

// ScrollView is the host container. SetScrollTop moves it to offset and
// reports whether the host will deliver a scroll change notification for the
// move; hosts do not notify when the position is unchanged.
type ScrollView interface {
	SetScrollTop(offset int) bool
}

// Request is a planned window fetch. Only the most recent plan may commit.
type Request struct {
	Seq       uint64
	ScrollTop int
	Index     int
	Count     int
}

// Option configures a Controller.
type Option[T any] func(*Controller[T])

// WithIndexFunc lets the controller verify the full DataSource contract on
// every batch.
func WithIndexFunc[T any](fn func(T) int) Option[T] {
	return func(c *Controller[T]) {
		c.indexOf = fn
	}
}

// WithObserver registers fn to run after every window replacement.
func WithObserver[T any](fn func(Window[T])) Option[T] {
	return func(c *Controller[T]) {
		c.observer = fn
	}
}

// Controller owns the window state and recomputes it on scroll changes.
// It is safe for concurrent use. Observers run outside the state lock and
// see windows in replacement order; a window replaced before its
// notification ran is skipped.
type Controller[T any] struct {
	mu       sync.Mutex
	settings Settings
	initial  InitialState
	window   Window[T]
	source   DataSource[T]
	indexOf  func(T) int
	observer func(Window[T])
	view     ScrollView
	mounted  bool
	seq      uint64
	gen      uint64 // bumped on every window replacement

	notifyMu  sync.Mutex
	delivered uint64
}

// NewController validates settings and returns a controller in its initial
// state. No data is fetched until Mount.
func NewController[T any](settings Settings, source DataSource[T], opts ...Option[T]) (*Controller[T], error) {
	if source == nil {
		return nil, errors.New("data source is required")
	}
	initial, err := DeriveInitialState(settings)
	if err != nil {
		return nil, err
	}
	c := &Controller[T]{
		settings: settings,
		initial:  initial,
		source:   source,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.window = c.initialWindow()
	return c, nil
}

// Settings returns the active settings.
func (c *Controller[T]) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// Geometry returns the derived geometry of the active settings.
func (c *Controller[T]) Geometry() Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initial.Geometry
}

// InitialState returns the state derived from the active settings.
func (c *Controller[T]) InitialState() InitialState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initial
}

// Window returns the current window.
func (c *Controller[T]) Window() Window[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.window
}

// Mounted reports whether Mount has run.
func (c *Controller[T]) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

// Mount moves view to the initial scroll position. When the position is
// zero, or the view will not notify, the first window is computed directly
// since no scroll change will arrive.
func (c *Controller[T]) Mount(ctx context.Context, view ScrollView) error {
	if view == nil {
		return errors.New("scroll view is required")
	}
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return ErrAlreadyMounted
	}
	c.mounted = true
	c.view = view
	c.mu.Unlock()
	return c.scrollToInitial(ctx, view)
}

// Unmount detaches the view and drops any in-flight request.
func (c *Controller[T]) Unmount() {
	c.mu.Lock()
	c.mounted = false
	c.view = nil
	c.seq++
	c.mu.Unlock()
}

// SetSettings replaces the settings. Invalid settings leave the controller
// untouched. Otherwise the window is reset to its initial state and, when
// mounted, the view is moved to the new initial position as on a fresh
// mount; the previous scroll position is not preserved.
func (c *Controller[T]) SetSettings(ctx context.Context, settings Settings) error {
	initial, err := DeriveInitialState(settings)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.settings = settings
	c.initial = initial
	c.seq++
	c.window = c.initialWindow()
	c.gen++
	window, gen := c.window, c.gen
	view := c.view
	mounted := c.mounted
	c.mu.Unlock()

	c.notify(window, gen)
	if !mounted {
		return nil
	}
	return c.scrollToInitial(ctx, view)
}

// OnScrollPositionChange recomputes the window for scrollTop and returns it.
// A failed fetch or a rejected batch keeps the previous window.
func (c *Controller[T]) OnScrollPositionChange(ctx context.Context, scrollTop int) (Window[T], error) {
	req := c.Plan(scrollTop)
	data, err := c.source.Fetch(ctx, req.Index, req.Count)
	if err != nil {
		return c.Window(), fmt.Errorf("fetch window at %d: %w", req.Index, err)
	}
	if _, err := c.Commit(req, data); err != nil {
		return c.Window(), err
	}
	return c.Window(), nil
}

// Plan computes the fetch for scrollTop and supersedes every earlier plan.
func (c *Controller[T]) Plan(scrollTop int) Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return Request{
		Seq:       c.seq,
		ScrollTop: scrollTop,
		Index:     anchorIndex(c.settings, c.initial.Geometry, scrollTop),
		Count:     c.initial.Geometry.BufferedItems,
	}
}

// Commit applies data fetched for req. It returns false without error when a
// newer plan or a settings change superseded req, and a *DataSourceError
// when the batch breaks the DataSource contract.
func (c *Controller[T]) Commit(req Request, data []T) (bool, error) {
	c.mu.Lock()
	if req.Seq != c.seq {
		c.mu.Unlock()
		return false, nil
	}
	if err := checkBatch(c.settings, req.Index, req.Count, data, c.indexOf); err != nil {
		c.mu.Unlock()
		return false, err
	}
	c.window = windowFor(c.settings, c.initial.Geometry, req.Index, data)
	c.gen++
	window, gen := c.window, c.gen
	c.mu.Unlock()

	c.notify(window, gen)
	return true, nil
}

// Source returns the data source.
func (c *Controller[T]) Source() DataSource[T] {
	return c.source
}

func (c *Controller[T]) scrollToInitial(ctx context.Context, view ScrollView) error {
	pos := c.InitialState().ScrollPosition
	notified := view.SetScrollTop(pos)
	if pos == 0 || !notified {
		_, err := c.OnScrollPositionChange(ctx, pos)
		return err
	}
	return nil
}

func (c *Controller[T]) initialWindow() Window[T] {
	return Window[T]{
		Index:               c.settings.StartIndex - c.settings.Tolerance,
		TopPaddingHeight:    c.initial.TopPaddingHeight,
		BottomPaddingHeight: c.initial.BottomPaddingHeight,
	}
}

func (c *Controller[T]) notify(window Window[T], gen uint64) {
	if c.observer == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if gen <= c.delivered {
		return
	}
	c.delivered = gen
	c.observer(window)
}
