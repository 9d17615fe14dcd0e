package xlsheet

import (
	"fmt"
	"maps"
	"slices"
)

// Sheet is a sparse grid of cells plus sheet-level structures.
type Sheet struct {
	name        string
	cells       map[CellPosition]Cell
	merges      []CellRange
	frozen      *FrozenPane
	columns     map[int]Dimension
	rows        map[int]Dimension
	validations map[CellRange]ValidationRule
}

// NewSheet creates an empty sheet.
func NewSheet(name string) *Sheet {
	return &Sheet{
		name:        name,
		cells:       make(map[CellPosition]Cell),
		columns:     make(map[int]Dimension),
		rows:        make(map[int]Dimension),
		validations: make(map[CellRange]ValidationRule),
	}
}

func (s *Sheet) Name() string        { return s.name }
func (s *Sheet) SetName(name string) { s.name = name }

// Len returns the number of stored cells.
func (s *Sheet) Len() int { return len(s.cells) }

// AddCell inserts or overwrites the cell at pos. The optional configure
// callbacks edit the cell before it is stored; nothing is stored if the
// resulting style is invalid.
func (s *Sheet) AddCell(pos CellPosition, value CellValue, configure ...func(*CellBuilder)) error {
	b := newCellBuilder(Cell{Value: value})
	for _, fn := range configure {
		if fn != nil {
			fn(b)
		}
	}
	return s.commit(pos, b)
}

// SetCell stores a ready-made cell after validating it.
func (s *Sheet) SetCell(pos CellPosition, c Cell) error {
	return s.commit(pos, newCellBuilder(c))
}

// UpdateCell applies configure to the existing cell at pos, or to an empty
// cell if none exists, and writes the result back.
func (s *Sheet) UpdateCell(pos CellPosition, configure func(*CellBuilder)) error {
	b := newCellBuilder(s.cells[pos])
	if configure != nil {
		configure(b)
	}
	return s.commit(pos, b)
}

func (s *Sheet) commit(pos CellPosition, b *CellBuilder) error {
	if !pos.valid() {
		return invalid("cell position", pos, ErrInvalidReference)
	}
	c, err := b.Build()
	if err != nil {
		return fmt.Errorf("cell %s: %w", pos, err)
	}
	s.cells[pos] = c
	return nil
}

// Cell returns the cell at pos.
func (s *Sheet) Cell(pos CellPosition) (Cell, bool) {
	c, ok := s.cells[pos]
	return c, ok
}

// RemoveCell deletes the cell at pos. Merge anchors are kept.
func (s *Sheet) RemoveCell(pos CellPosition) {
	for _, m := range s.merges {
		if m.Min == pos {
			s.cells[pos] = Cell{}
			return
		}
	}
	delete(s.cells, pos)
}

// Positions returns every stored position ordered by row, then column.
func (s *Sheet) Positions() []CellPosition {
	out := slices.Collect(maps.Keys(s.cells))
	slices.SortFunc(out, func(a, b CellPosition) int {
		if a.less(b) {
			return -1
		}
		if b.less(a) {
			return 1
		}
		return 0
	})
	return out
}

// UsedRange is the smallest range covering every cell, merge, and sized
// row or column. ok is false for an empty sheet.
func (s *Sheet) UsedRange() (r CellRange, ok bool) {
	extend := func(p CellPosition) {
		if !ok {
			r, ok = SingleCell(p), true
			return
		}
		r = RangeFromBounds(
			CellPosition{Column: min(r.Min.Column, p.Column), Row: min(r.Min.Row, p.Row)},
			CellPosition{Column: max(r.Max.Column, p.Column), Row: max(r.Max.Row, p.Row)},
		)
	}
	for p := range s.cells {
		extend(p)
	}
	for _, m := range s.merges {
		extend(m.Min)
		extend(m.Max)
	}
	for col := range s.columns {
		extend(CellPosition{Column: col})
	}
	for row := range s.rows {
		extend(CellPosition{Row: row})
	}
	return r, ok
}

// MergeCells registers a merged range. Single cells and ranges overlapping an
// existing merge are rejected. The anchor (top-left) cell is created empty if
// it does not exist.
func (s *Sheet) MergeCells(r CellRange) error {
	r = RangeFromBounds(r.Min, r.Max)
	if !r.valid() {
		return invalid("merge range", r, ErrInvalidRange)
	}
	if r.IsSingleCell() {
		return invalid("merge range", r, ErrInvalidRange)
	}
	for _, m := range s.merges {
		if m.Overlaps(r) {
			return fmt.Errorf("merge %s: %w (%s)", r, ErrOverlappingMerge, m)
		}
	}
	s.merges = append(s.merges, r)
	if _, ok := s.cells[r.Min]; !ok {
		s.cells[r.Min] = Cell{}
	}
	return nil
}

// UnmergeCells removes an exact merged range and reports whether it existed.
func (s *Sheet) UnmergeCells(r CellRange) bool {
	r = RangeFromBounds(r.Min, r.Max)
	i := slices.Index(s.merges, r)
	if i < 0 {
		return false
	}
	s.merges = slices.Delete(s.merges, i, i+1)
	return true
}

// MergedCells returns a copy of the merged ranges in insertion order.
func (s *Sheet) MergedCells() []CellRange { return slices.Clone(s.merges) }

// FreezePanes keeps the first rows and columns visible. Last write wins.
func (s *Sheet) FreezePanes(rows, columns int) error {
	if rows < 0 || columns < 0 {
		return invalid("frozen pane", fmt.Sprintf("%d,%d", rows, columns), ErrInvalidRange)
	}
	if rows == 0 && columns == 0 {
		s.frozen = nil
		return nil
	}
	s.frozen = &FrozenPane{Rows: rows, Columns: columns}
	return nil
}

// FreezeRows freezes the first n rows.
func (s *Sheet) FreezeRows(n int) error { return s.FreezePanes(n, 0) }

// FreezeColumns freezes the first n columns.
func (s *Sheet) FreezeColumns(n int) error { return s.FreezePanes(0, n) }

// Unfreeze removes the frozen pane.
func (s *Sheet) Unfreeze() { s.frozen = nil }

// FrozenPane returns the frozen pane, if any.
func (s *Sheet) FrozenPane() (FrozenPane, bool) {
	if s.frozen == nil {
		return FrozenPane{}, false
	}
	return *s.frozen, true
}

// AddValidation attaches rule to r. Earlier rules whose range overlaps r are
// replaced, never merged.
func (s *Sheet) AddValidation(r CellRange, rule ValidationRule) error {
	r = RangeFromBounds(r.Min, r.Max)
	if !r.valid() {
		return invalid("validation range", r, ErrInvalidRange)
	}
	if err := rule.Validate(); err != nil {
		return err
	}
	for existing := range s.validations {
		if existing.Overlaps(r) {
			delete(s.validations, existing)
		}
	}
	s.validations[r] = rule
	return nil
}

// Validation returns the rule registered for exactly r.
func (s *Sheet) Validation(r CellRange) (ValidationRule, bool) {
	rule, ok := s.validations[RangeFromBounds(r.Min, r.Max)]
	return rule, ok
}

// Validations returns every rule ordered by the top-left cell of its range.
func (s *Sheet) Validations() []RangeValidation {
	out := make([]RangeValidation, 0, len(s.validations))
	for r, rule := range s.validations {
		out = append(out, RangeValidation{Range: r, Rule: rule})
	}
	slices.SortFunc(out, func(a, b RangeValidation) int {
		if a.Range.Min.less(b.Range.Min) {
			return -1
		}
		if b.Range.Min.less(a.Range.Min) {
			return 1
		}
		return 0
	})
	return out
}

// SetColumnWidth overrides the width of a column. Last write wins.
func (s *Sheet) SetColumnWidth(col int, d Dimension) error {
	if col < 0 {
		return invalid("column", col, ErrUnknownColumn)
	}
	if err := d.validate("column width", MaxColumnWidth); err != nil {
		return err
	}
	s.columns[col] = d
	return nil
}

// SetRowHeight overrides the height of a row. Last write wins.
func (s *Sheet) SetRowHeight(row int, d Dimension) error {
	if row < 0 {
		return invalid("row", row, ErrInvalidReference)
	}
	if err := d.validate("row height", MaxRowHeight); err != nil {
		return err
	}
	s.rows[row] = d
	return nil
}

func (s *Sheet) ColumnWidth(col int) (Dimension, bool) {
	d, ok := s.columns[col]
	return d, ok
}

func (s *Sheet) RowHeight(row int) (Dimension, bool) {
	d, ok := s.rows[row]
	return d, ok
}

// ColumnWidths returns a copy of the column overrides.
func (s *Sheet) ColumnWidths() map[int]Dimension { return maps.Clone(s.columns) }

// RowHeights returns a copy of the row overrides.
func (s *Sheet) RowHeights() map[int]Dimension { return maps.Clone(s.rows) }
