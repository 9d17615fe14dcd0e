package xlsheet

import (
	"fmt"
	"strconv"
	"strings"
)

// CellPosition is a zero-based (column, row) pair.
type CellPosition struct {
	Column int
	Row    int
}

// Pos creates a CellPosition.
func Pos(column, row int) CellPosition {
	return CellPosition{Column: column, Row: row}
}

// ParsePosition parses a reference like "A1" or "$B$7" into a zero-based position.
func ParsePosition(ref string) (CellPosition, error) {
	s := strings.ReplaceAll(strings.TrimSpace(ref), "$", "")
	if s == "" {
		return CellPosition{}, fmt.Errorf("%w: empty reference", ErrInvalidReference)
	}

	i := 0
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	if i == 0 || i == len(s) {
		return CellPosition{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}

	col, err := ColumnIndex(s[:i])
	if err != nil {
		return CellPosition{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}

	digits := s[i:]
	if digits[0] == '0' {
		return CellPosition{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	row, err := strconv.Atoi(digits)
	if err != nil || row < 1 {
		return CellPosition{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}

	return CellPosition{Column: col, Row: row - 1}, nil
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// Ref returns the reference string, e.g. "AB12".
func (p CellPosition) Ref() string {
	return ColumnLetters(p.Column) + strconv.Itoa(p.Row+1)
}

// AbsoluteRef returns the reference with both parts pinned, e.g. "$AB$12".
func (p CellPosition) AbsoluteRef() string {
	return "$" + ColumnLetters(p.Column) + "$" + strconv.Itoa(p.Row+1)
}

func (p CellPosition) String() string { return p.Ref() }

// valid reports whether both coordinates are non-negative.
func (p CellPosition) valid() bool { return p.Column >= 0 && p.Row >= 0 }

// less orders positions row-major.
func (p CellPosition) less(o CellPosition) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Column < o.Column
}

// ColumnLetters converts a 0-based column index to its letters.
// 0→"A", 25→"Z", 26→"AA", 27→"AB", 702→"AAA"
func ColumnLetters(col int) string {
	var buf [8]byte
	i := len(buf)
	col++
	for col > 0 {
		col--
		i--
		buf[i] = byte('A' + col%26)
		col /= 26
	}
	return string(buf[i:])
}

// ColumnIndex converts column letters to a 0-based index.
// "A"→0, "Z"→25, "AA"→26
func ColumnIndex(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("%w: empty column name", ErrUnknownColumn)
	}
	col := 0
	for _, ch := range strings.ToUpper(letters) {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, letters)
		}
		col = col*26 + int(ch-'A') + 1
	}
	return col - 1, nil
}

// CellRange is an axis-aligned rectangle of cells with Min <= Max on both axes.
type CellRange struct {
	Min CellPosition
	Max CellPosition
}

// RangeFromBounds builds a normalized range from any two corners.
func RangeFromBounds(a, b CellPosition) CellRange {
	return CellRange{
		Min: CellPosition{Column: min(a.Column, b.Column), Row: min(a.Row, b.Row)},
		Max: CellPosition{Column: max(a.Column, b.Column), Row: max(a.Row, b.Row)},
	}
}

// SingleCell returns the range covering only p.
func SingleCell(p CellPosition) CellRange { return CellRange{Min: p, Max: p} }

// ParseRange parses "A1:C5" (or a lone "B2") into a normalized range.
func ParseRange(s string) (CellRange, error) {
	s = strings.TrimSpace(s)
	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		s = s[idx+1:]
	}
	first, last, found := strings.Cut(s, ":")
	a, err := ParsePosition(first)
	if err != nil {
		return CellRange{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	if !found {
		return SingleCell(a), nil
	}
	b, err := ParsePosition(last)
	if err != nil {
		return CellRange{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	return RangeFromBounds(a, b), nil
}

// IsSingleCell reports whether the range spans exactly one cell.
func (r CellRange) IsSingleCell() bool { return r.Min == r.Max }

// Overlaps reports whether the two rectangles share at least one cell.
func (r CellRange) Overlaps(o CellRange) bool {
	return r.Min.Column <= o.Max.Column && o.Min.Column <= r.Max.Column &&
		r.Min.Row <= o.Max.Row && o.Min.Row <= r.Max.Row
}

// Contains reports whether p lies inside the range.
func (r CellRange) Contains(p CellPosition) bool {
	return p.Column >= r.Min.Column && p.Column <= r.Max.Column &&
		p.Row >= r.Min.Row && p.Row <= r.Max.Row
}

// Width is the number of columns covered.
func (r CellRange) Width() int { return r.Max.Column - r.Min.Column + 1 }

// Height is the number of rows covered.
func (r CellRange) Height() int { return r.Max.Row - r.Min.Row + 1 }

// Ref formats the range as "A1:C5", or "A1" for a single cell.
func (r CellRange) Ref() string {
	if r.IsSingleCell() {
		return r.Min.Ref()
	}
	return r.Min.Ref() + ":" + r.Max.Ref()
}

// AbsoluteRef formats the range as "$A$1:$C$5".
func (r CellRange) AbsoluteRef() string {
	return r.Min.AbsoluteRef() + ":" + r.Max.AbsoluteRef()
}

func (r CellRange) String() string { return r.Ref() }

func (r CellRange) valid() bool { return r.Min.valid() && r.Max.valid() }
