package xlsheet

import (
	"slices"
	"strings"
)

// StyleDefinition is the canonical, comparable form of a cell's effective
// style. It is the deduplication key: cells with equal definitions share
// one style-table entry.
type StyleDefinition struct {
	Font         CellFont
	Fill         string
	Borders      CellBorders
	IsDate       bool
	NumberFormat string
	Horizontal   HorizontalAlignment
	Vertical     VerticalAlignment
	TextRotation int
	WrapText     bool
}

// Style converts the definition back into a CellStyle.
func (d StyleDefinition) Style() CellStyle {
	return CellStyle{
		FillColor:    d.Fill,
		Font:         d.Font,
		Borders:      d.Borders,
		NumberFormat: d.NumberFormat,
		Horizontal:   d.Horizontal,
		Vertical:     d.Vertical,
		TextRotation: d.TextRotation,
		WrapText:     d.WrapText,
	}
}

// StyleEntry is one composite record of the style table. The ids index
// into the font, fill, border and number-format tables.
type StyleEntry struct {
	Definition StyleDefinition
	FontID     int
	FillID     int
	BorderID   int
	NumFmtID   int
}

// StyleTable assigns shared indices to style definitions. Fonts, fills and
// borders are deduplicated independently; slot 0 of each is the default
// (default font, no fill, no border) and entry 0 is the default style.
// A table lives for one serialization pass.
type StyleTable struct {
	defaultFont    CellFont
	dateTimeFormat string
	dateFormat     string

	fonts     []CellFont
	fontIDs   map[CellFont]int
	fills     []string
	fillIDs   map[string]int
	borders   []CellBorders
	borderIDs map[CellBorders]int
	numFmts   *NumberFormats

	entries []StyleEntry
	index   map[StyleDefinition]int
}

// NewStyleTable creates a table holding only the default entry.
func NewStyleTable(opts ...Option) *StyleTable {
	return newStyleTable(newOptions(opts))
}

func newStyleTable(o *Options) *StyleTable {
	t := &StyleTable{
		defaultFont:    o.defaultFont,
		dateTimeFormat: o.dateTimeFormat,
		dateFormat:     o.dateFormat,
		fonts:          []CellFont{o.defaultFont},
		fontIDs:        map[CellFont]int{o.defaultFont: 0},
		fills:          []string{""},
		fillIDs:        map[string]int{"": 0},
		borders:        []CellBorders{{}},
		borderIDs:      map[CellBorders]int{{}: 0},
		numFmts:        NewNumberFormats(),
		index:          make(map[StyleDefinition]int),
	}
	t.Register(StyleDefinition{Font: o.defaultFont})
	return t
}

// BuildStyleTable scans every cell of the workbook once and registers its
// style definition.
func BuildStyleTable(wb *Workbook) *StyleTable {
	t := newStyleTable(wb.opts)
	for _, s := range wb.sheets {
		for _, pos := range s.Positions() {
			t.IndexOf(s.cells[pos])
		}
	}
	return t
}

// Definition computes the canonical style definition of a cell.
func (t *StyleTable) Definition(c Cell) StyleDefinition {
	s := c.Style.normalized()
	font := s.Font
	if font.IsZero() {
		font = t.defaultFont
	}
	if font.Size == 0 {
		font.Size = t.defaultFont.Size
	}
	if font.Family == "" {
		font.Family = t.defaultFont.Family
	}

	fill := s.FillColor
	if strings.EqualFold(fill, "FFFFFF") {
		fill = ""
	}

	isDate := c.Value.IsDate()
	code := s.NumberFormat
	if code == "" && isDate {
		code = t.defaultDateFormat(c.Value)
	}

	return StyleDefinition{
		Font:         font,
		Fill:         fill,
		Borders:      s.Borders,
		IsDate:       isDate,
		NumberFormat: code,
		Horizontal:   s.Horizontal,
		Vertical:     s.Vertical,
		TextRotation: s.TextRotation,
		WrapText:     s.WrapText,
	}
}

// defaultDateFormat picks the date-only format for midnight values and the
// date-time format otherwise.
func (t *StyleTable) defaultDateFormat(v CellValue) string {
	d, _ := v.AsDateTime()
	if d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 && d.Nanosecond() == 0 {
		return t.dateFormat
	}
	return t.dateTimeFormat
}

// IndexOf registers the cell's definition and returns its entry index.
func (t *StyleTable) IndexOf(c Cell) int {
	return t.Register(t.Definition(c))
}

// Register returns the index of def, appending a new entry when def has not
// been seen.
func (t *StyleTable) Register(def StyleDefinition) int {
	if id, ok := t.index[def]; ok {
		return id
	}
	entry := StyleEntry{
		Definition: def,
		FontID:     t.fontID(def.Font),
		FillID:     t.fillID(def.Fill),
		BorderID:   t.borderID(def.Borders),
		NumFmtID:   t.numFmts.Register(def.NumberFormat),
	}
	id := len(t.entries)
	t.entries = append(t.entries, entry)
	t.index[def] = id
	return id
}

// Lookup returns the index of an already registered definition.
func (t *StyleTable) Lookup(def StyleDefinition) (int, bool) {
	id, ok := t.index[def]
	return id, ok
}

func (t *StyleTable) fontID(f CellFont) int {
	if id, ok := t.fontIDs[f]; ok {
		return id
	}
	id := len(t.fonts)
	t.fonts = append(t.fonts, f)
	t.fontIDs[f] = id
	return id
}

func (t *StyleTable) fillID(color string) int {
	if id, ok := t.fillIDs[color]; ok {
		return id
	}
	id := len(t.fills)
	t.fills = append(t.fills, color)
	t.fillIDs[color] = id
	return id
}

func (t *StyleTable) borderID(b CellBorders) int {
	if id, ok := t.borderIDs[b]; ok {
		return id
	}
	id := len(t.borders)
	t.borders = append(t.borders, b)
	t.borderIDs[b] = id
	return id
}

// Len returns the number of composite entries, including the default.
func (t *StyleTable) Len() int { return len(t.entries) }

// Entry returns the entry at index id.
func (t *StyleTable) Entry(id int) (StyleEntry, error) {
	if id < 0 || id >= len(t.entries) {
		return StyleEntry{}, invalid("style index", id, ErrStyleNotFound)
	}
	return t.entries[id], nil
}

func (t *StyleTable) Entries() []StyleEntry         { return slices.Clone(t.entries) }
func (t *StyleTable) Fonts() []CellFont             { return slices.Clone(t.fonts) }
func (t *StyleTable) Fills() []string               { return slices.Clone(t.fills) }
func (t *StyleTable) Borders() []CellBorders        { return slices.Clone(t.borders) }
func (t *StyleTable) NumberFormats() *NumberFormats { return t.numFmts }
