package xlsheet

import (
	"fmt"
	"slices"
)

// NamedRange is a workbook-level alias for a range on one sheet.
type NamedRange struct {
	Name  string
	Sheet string
	Range CellRange
}

// RefersTo encodes the target as "Sheet!$A$1:$B$2", quoting the sheet name
// when needed.
func (n NamedRange) RefersTo() string {
	return quoteSheetName(n.Sheet) + "!" + n.Range.AbsoluteRef()
}

// Workbook is an ordered list of sheets plus named ranges.
type Workbook struct {
	sheets []*Sheet
	names  []NamedRange
	opts   *Options
}

// NewWorkbook creates an empty workbook. Options set the default font and
// the number formats given to date values.
func NewWorkbook(opts ...Option) *Workbook {
	return &Workbook{opts: newOptions(opts)}
}

// DefaultFont is the font used for cells that do not set one.
func (wb *Workbook) DefaultFont() CellFont { return wb.opts.defaultFont }

// AddSheet appends a new empty sheet. Names are not required to be unique
// in the model; the writer rejects duplicates.
func (wb *Workbook) AddSheet(name string) *Sheet {
	s := NewSheet(name)
	wb.sheets = append(wb.sheets, s)
	return s
}

// AppendSheet appends an existing sheet.
func (wb *Workbook) AppendSheet(s *Sheet) {
	wb.sheets = append(wb.sheets, s)
}

// Sheets returns the sheets in order.
func (wb *Workbook) Sheets() []*Sheet { return slices.Clone(wb.sheets) }

// Len returns the number of sheets.
func (wb *Workbook) Len() int { return len(wb.sheets) }

// Sheet returns the sheet at index id.
func (wb *Workbook) Sheet(id int) (*Sheet, error) {
	if id < 0 || id >= len(wb.sheets) {
		return nil, fmt.Errorf("sheet id %d: %w", id, ErrUnknownSheet)
	}
	return wb.sheets[id], nil
}

// SheetByName returns the first sheet with the given name.
func (wb *Workbook) SheetByName(name string) (*Sheet, error) {
	for _, s := range wb.sheets {
		if s.name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sheet %q: %w", name, ErrUnknownSheet)
}

// RemoveSheet deletes the sheet at index id along with named ranges that
// point at it.
func (wb *Workbook) RemoveSheet(id int) error {
	s, err := wb.Sheet(id)
	if err != nil {
		return err
	}
	wb.sheets = slices.Delete(wb.sheets, id, id+1)
	wb.names = slices.DeleteFunc(wb.names, func(n NamedRange) bool { return n.Sheet == s.name })
	return nil
}

// AddNamedRange registers name for r on the named sheet. Re-adding a name
// replaces its target.
func (wb *Workbook) AddNamedRange(name, sheet string, r CellRange) error {
	if name == "" {
		return invalid("range name", name, ErrInvalidReference)
	}
	if _, err := wb.SheetByName(sheet); err != nil {
		return err
	}
	r = RangeFromBounds(r.Min, r.Max)
	if !r.valid() {
		return invalid("named range", r, ErrInvalidRange)
	}
	n := NamedRange{Name: name, Sheet: sheet, Range: r}
	if i := slices.IndexFunc(wb.names, func(x NamedRange) bool { return x.Name == name }); i >= 0 {
		wb.names[i] = n
		return nil
	}
	wb.names = append(wb.names, n)
	return nil
}

// NamedRange looks up a named range.
func (wb *Workbook) NamedRange(name string) (NamedRange, bool) {
	i := slices.IndexFunc(wb.names, func(x NamedRange) bool { return x.Name == name })
	if i < 0 {
		return NamedRange{}, false
	}
	return wb.names[i], true
}

// NamedRanges returns the named ranges in insertion order.
func (wb *Workbook) NamedRanges() []NamedRange { return slices.Clone(wb.names) }

// quoteSheetName wraps names containing anything but letters, digits and
// underscores in single quotes.
func quoteSheetName(name string) string {
	for _, r := range name {
		if !(r == '_' || (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')) {
			return "'" + escapeQuotes(name) + "'"
		}
	}
	return name
}

func escapeQuotes(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\'' {
			out = append(out, '\'')
		}
		out = append(out, r)
	}
	return string(out)
}
