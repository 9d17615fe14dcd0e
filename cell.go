package xlsheet

import (
	"maps"
	"time"
)

// CellMetadata is an optional side channel describing where a value came
// from. It never affects styling.
type CellMetadata struct {
	Source     string
	ImportedAt time.Time
	RawValue   string
	Custom     map[string]string
}

func (m *CellMetadata) clone() *CellMetadata {
	if m == nil {
		return nil
	}
	c := *m
	c.Custom = maps.Clone(m.Custom)
	return &c
}

// Hyperlink is an external link attached to a cell.
type Hyperlink struct {
	URL     string
	Tooltip string
}

// Cell is a value with its style and optional side channels.
type Cell struct {
	Value     CellValue
	Style     CellStyle
	Metadata  *CellMetadata
	Hyperlink *Hyperlink
}

// Validate checks the cell's style.
func (c Cell) Validate() error { return c.Style.Validate() }

// CellBuilder is handed to AddCell and UpdateCell callbacks. It works on a
// copy; the sheet only sees the result after Build succeeds.
type CellBuilder struct {
	value    CellValue
	style    *StyleBuilder
	metadata *CellMetadata
	link     *Hyperlink
}

func newCellBuilder(c Cell) *CellBuilder {
	b := &CellBuilder{
		value:    c.Value,
		style:    NewStyleBuilder(c.Style),
		metadata: c.Metadata.clone(),
	}
	if c.Hyperlink != nil {
		l := *c.Hyperlink
		b.link = &l
	}
	return b
}

// Value replaces the cell value.
func (b *CellBuilder) Value(v CellValue) *CellBuilder {
	b.value = v
	return b
}

// CurrentValue returns the value as it stands in the builder.
func (b *CellBuilder) CurrentValue() CellValue { return b.value }

// Style exposes the style builder for chained edits.
func (b *CellBuilder) Style() *StyleBuilder { return b.style }

// SetStyle replaces the whole style.
func (b *CellBuilder) SetStyle(s CellStyle) *CellBuilder {
	b.style = NewStyleBuilder(CellStyle{})
	b.style.apply(func(CellStyle) (CellStyle, error) {
		if err := s.Validate(); err != nil {
			return s, err
		}
		return s.normalized(), nil
	})
	return b
}

// Link attaches a hyperlink.
func (b *CellBuilder) Link(url, tooltip string) *CellBuilder {
	b.link = &Hyperlink{URL: url, Tooltip: tooltip}
	return b
}

// ClearLink removes the hyperlink.
func (b *CellBuilder) ClearLink() *CellBuilder {
	b.link = nil
	return b
}

// Metadata attaches metadata.
func (b *CellBuilder) Metadata(m CellMetadata) *CellBuilder {
	b.metadata = m.clone()
	return b
}

// Build materializes the cell.
func (b *CellBuilder) Build() (Cell, error) {
	style, err := b.style.Build()
	if err != nil {
		return Cell{}, err
	}
	return Cell{Value: b.value, Style: style, Metadata: b.metadata, Hyperlink: b.link}, nil
}
