package xlsheet

import "fmt"

// SizeMode says how a column width or row height is determined.
type SizeMode int

const (
	SizeExplicit SizeMode = iota
	SizeHidden
	SizeAutoExpand
)

// Dimension is a per-column width or per-row height override: either an
// explicit value or one of the Hidden / AutoExpand sentinels.
type Dimension struct {
	Mode  SizeMode
	Value float64
}

var (
	Hidden     = Dimension{Mode: SizeHidden}
	AutoExpand = Dimension{Mode: SizeAutoExpand}
)

// Size returns an explicit dimension.
func Size(v float64) Dimension { return Dimension{Mode: SizeExplicit, Value: v} }

func (d Dimension) IsHidden() bool     { return d.Mode == SizeHidden }
func (d Dimension) IsAutoExpand() bool { return d.Mode == SizeAutoExpand }

func (d Dimension) String() string {
	switch d.Mode {
	case SizeHidden:
		return "hidden"
	case SizeAutoExpand:
		return "auto"
	default:
		return fmt.Sprintf("%g", d.Value)
	}
}

func (d Dimension) validate(field string, limit float64) error {
	if d.Mode != SizeExplicit {
		return nil
	}
	if d.Value <= 0 || d.Value > limit {
		return invalid(field, d.Value, ErrInvalidSize)
	}
	return nil
}

// FrozenPane keeps the first Rows rows and Columns columns visible.
type FrozenPane struct {
	Rows    int
	Columns int
}

// ActivePane names the quadrant that scrolls, in the toolkit's vocabulary.
func (p FrozenPane) ActivePane() string {
	switch {
	case p.Rows > 0 && p.Columns > 0:
		return "bottomRight"
	case p.Rows > 0:
		return "bottomLeft"
	case p.Columns > 0:
		return "topRight"
	default:
		return "topLeft"
	}
}

// TopLeftCell is the first scrollable cell.
func (p FrozenPane) TopLeftCell() CellPosition {
	return CellPosition{Column: p.Columns, Row: p.Rows}
}
