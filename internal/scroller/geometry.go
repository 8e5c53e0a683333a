package scroller

// Geometry holds the quantities derived from Settings. It is constant until
// the settings change.
type Geometry struct {
	// ViewportHeight is the visible part of the viewport.
	ViewportHeight int
	// TotalHeight covers rendered and virtualized rows together.
	TotalHeight int
	// ToleranceHeight is one outlet of rendered but invisible rows.
	ToleranceHeight int
	// BufferHeight is the height of every rendered row, outlets included.
	BufferHeight int
	// BufferedItems is the number of rows requested per window.
	BufferedItems int
}

// InitialState is the state a freshly mounted controller starts from.
type InitialState struct {
	Geometry Geometry
	// ItemsAbove is the signed count of virtualized rows above the first
	// buffered window. It is negative when StartIndex sits within Tolerance
	// of MinIndex.
	ItemsAbove          int
	TopPaddingHeight    int
	BottomPaddingHeight int
	ScrollPosition      int
}

// NewGeometry computes the derived constants. It does not validate.
func NewGeometry(s Settings) Geometry {
	viewport := s.Amount * s.ItemHeight
	tolerance := s.Tolerance * s.ItemHeight
	return Geometry{
		ViewportHeight:  viewport,
		TotalHeight:     s.Count() * s.ItemHeight,
		ToleranceHeight: tolerance,
		BufferHeight:    viewport + 2*tolerance,
		BufferedItems:   s.Amount + 2*s.Tolerance,
	}
}

// DeriveInitialState validates s and computes its geometry, initial padding
// and initial scroll position. Invalid settings yield a *ConfigError and no
// geometry.
func DeriveInitialState(s Settings) (InitialState, error) {
	if err := s.Validate(); err != nil {
		return InitialState{}, err
	}
	g := NewGeometry(s)
	itemsAbove := s.StartIndex - s.Tolerance - s.MinIndex
	top := max(itemsAbove*s.ItemHeight, 0)
	return InitialState{
		Geometry:            g,
		ItemsAbove:          itemsAbove,
		TopPaddingHeight:    top,
		BottomPaddingHeight: g.TotalHeight - top,
		ScrollPosition:      top + g.ToleranceHeight,
	}, nil
}
