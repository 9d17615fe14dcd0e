package xlsheet

import "fmt"

// Toolkit limits for sizes and rotation.
const (
	MaxFontSize     = 409
	MaxColumnWidth  = 255
	MaxRowHeight    = 409
	MinTextRotation = -90
	MaxTextRotation = 90
)

// CellFont describes the font of a cell. The zero value means "use the
// workbook default font".
type CellFont struct {
	Size      float64
	Family    string
	Color     string
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
}

// DefaultFont returns the font applied to cells that do not set one.
func DefaultFont() CellFont {
	return CellFont{Size: 11, Family: "Calibri"}
}

// IsZero reports whether no font field has been set.
func (f CellFont) IsZero() bool { return f == CellFont{} }

// IsValid reports whether the font color is a valid hex color.
func (f CellFont) IsValid() bool { return f.Validate() == nil }

// Validate checks the color and size of the font.
func (f CellFont) Validate() error {
	if !IsValidColor(f.Color) {
		return invalid("font color", f.Color, ErrInvalidColor)
	}
	if f.Size < 0 || f.Size > MaxFontSize {
		return invalid("font size", f.Size, ErrInvalidSize)
	}
	return nil
}

func (f CellFont) normalized() CellFont {
	c, _ := checkColor("font color", f.Color)
	f.Color = c
	return f
}

// WithColor returns a copy of f with the given color.
func (f CellFont) WithColor(hex string) (CellFont, error) {
	c, err := checkColor("font color", hex)
	if err != nil {
		return f, err
	}
	f.Color = c
	return f, nil
}

// BorderStyle is the line style of a single border edge. The numeric values
// match the toolkit's border style ids.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderThin
	BorderMedium
	BorderDashed
	BorderDotted
	BorderThick
	BorderDouble
	BorderHair
	BorderMediumDashed
	BorderDashDot
	BorderMediumDashDot
	BorderDashDotDot
	BorderMediumDashDotDot
	BorderSlantDashDot
)

var borderStyleNames = [...]string{
	"none", "thin", "medium", "dashed", "dotted", "thick", "double", "hair",
	"mediumDashed", "dashDot", "mediumDashDot", "dashDotDot", "mediumDashDotDot", "slantDashDot",
}

func (s BorderStyle) String() string {
	if s < 0 || int(s) >= len(borderStyleNames) {
		return "unknown"
	}
	return borderStyleNames[s]
}

func (s BorderStyle) valid() bool { return s >= BorderNone && s <= BorderSlantDashDot }

// BorderEdge is one side of a cell border.
type BorderEdge struct {
	Style BorderStyle
	Color string
}

// CellBorders holds the four edges of a cell border. The zero value is "no border".
type CellBorders struct {
	Left   BorderEdge
	Right  BorderEdge
	Top    BorderEdge
	Bottom BorderEdge
}

// Outline returns borders with the same style and color on all four edges.
func Outline(style BorderStyle, color string) (CellBorders, error) {
	c, err := checkColor("border color", color)
	if err != nil {
		return CellBorders{}, err
	}
	e := BorderEdge{Style: style, Color: c}
	b := CellBorders{Left: e, Right: e, Top: e, Bottom: e}
	return b, b.Validate()
}

// IsZero reports whether no edge is set.
func (b CellBorders) IsZero() bool { return b == CellBorders{} }

// IsValid reports whether every edge color is valid.
func (b CellBorders) IsValid() bool { return b.Validate() == nil }

// Validate checks the style and color of each edge.
func (b CellBorders) Validate() error {
	for _, e := range []struct {
		name string
		edge BorderEdge
	}{{"left", b.Left}, {"right", b.Right}, {"top", b.Top}, {"bottom", b.Bottom}} {
		if !IsValidColor(e.edge.Color) {
			return invalid(e.name+" border color", e.edge.Color, ErrInvalidColor)
		}
		if !e.edge.Style.valid() {
			return invalid(e.name+" border style", int(e.edge.Style), ErrInvalidRule)
		}
	}
	return nil
}

func (b CellBorders) normalized() CellBorders {
	for _, e := range []*BorderEdge{&b.Left, &b.Right, &b.Top, &b.Bottom} {
		e.Color, _ = checkColor("border color", e.Color)
	}
	return b
}

// HorizontalAlignment is the horizontal placement of cell content.
type HorizontalAlignment int

const (
	HAlignUnset HorizontalAlignment = iota
	HAlignGeneral
	HAlignLeft
	HAlignCenter
	HAlignRight
	HAlignFill
	HAlignJustify
	HAlignDistributed
)

var horizontalNames = map[HorizontalAlignment]string{
	HAlignGeneral:     "general",
	HAlignLeft:        "left",
	HAlignCenter:      "center",
	HAlignRight:       "right",
	HAlignFill:        "fill",
	HAlignJustify:     "justify",
	HAlignDistributed: "distributed",
}

func (h HorizontalAlignment) String() string { return horizontalNames[h] }

// VerticalAlignment is the vertical placement of cell content.
type VerticalAlignment int

const (
	VAlignUnset VerticalAlignment = iota
	VAlignTop
	VAlignCenter
	VAlignBottom
	VAlignJustify
	VAlignDistributed
)

var verticalNames = map[VerticalAlignment]string{
	VAlignTop:         "top",
	VAlignCenter:      "center",
	VAlignBottom:      "bottom",
	VAlignJustify:     "justify",
	VAlignDistributed: "distributed",
}

func (v VerticalAlignment) String() string { return verticalNames[v] }

func parseHorizontal(s string) HorizontalAlignment {
	for h, name := range horizontalNames {
		if name == s {
			return h
		}
	}
	return HAlignUnset
}

func parseVertical(s string) VerticalAlignment {
	for v, name := range verticalNames {
		if name == s {
			return v
		}
	}
	return VAlignUnset
}

// CellStyle is the full visual description of a cell. It is a comparable
// value: two styles with equal fields are interchangeable.
type CellStyle struct {
	FillColor    string
	Font         CellFont
	Borders      CellBorders
	NumberFormat string
	Horizontal   HorizontalAlignment
	Vertical     VerticalAlignment
	TextRotation int
	WrapText     bool
}

// IsValid reports whether every color in the style is valid.
func (s CellStyle) IsValid() bool { return s.Validate() == nil }

// Validate checks colors, sizes and rotation.
func (s CellStyle) Validate() error {
	if !IsValidColor(s.FillColor) {
		return invalid("fill color", s.FillColor, ErrInvalidColor)
	}
	if err := s.Font.Validate(); err != nil {
		return err
	}
	if err := s.Borders.Validate(); err != nil {
		return err
	}
	if s.TextRotation < MinTextRotation || s.TextRotation > MaxTextRotation {
		return invalid("text rotation", s.TextRotation, ErrInvalidRotation)
	}
	return nil
}

// normalized upper-cases every color so equal colors compare equal.
func (s CellStyle) normalized() CellStyle {
	s.FillColor, _ = checkColor("fill color", s.FillColor)
	s.Font = s.Font.normalized()
	s.Borders = s.Borders.normalized()
	return s
}

// WithFillColor returns a copy with the given background color.
func (s CellStyle) WithFillColor(hex string) (CellStyle, error) {
	c, err := checkColor("fill color", hex)
	if err != nil {
		return s, err
	}
	s.FillColor = c
	return s, nil
}

// WithFont returns a copy with the given font.
func (s CellStyle) WithFont(f CellFont) (CellStyle, error) {
	if err := f.Validate(); err != nil {
		return s, err
	}
	s.Font = f.normalized()
	return s, nil
}

// WithBorders returns a copy with the given borders.
func (s CellStyle) WithBorders(b CellBorders) (CellStyle, error) {
	if err := b.Validate(); err != nil {
		return s, err
	}
	s.Borders = b.normalized()
	return s, nil
}

// WithNumberFormat returns a copy with the given number format code.
func (s CellStyle) WithNumberFormat(code string) CellStyle {
	s.NumberFormat = code
	return s
}

// WithAlignment returns a copy with the given alignment.
func (s CellStyle) WithAlignment(h HorizontalAlignment, v VerticalAlignment) CellStyle {
	s.Horizontal = h
	s.Vertical = v
	return s
}

// WithRotation returns a copy with the given text rotation in degrees.
func (s CellStyle) WithRotation(degrees int) (CellStyle, error) {
	if degrees < MinTextRotation || degrees > MaxTextRotation {
		return s, invalid("text rotation", degrees, ErrInvalidRotation)
	}
	s.TextRotation = degrees
	return s, nil
}

// WithWrap returns a copy with text wrapping switched on or off.
func (s CellStyle) WithWrap(wrap bool) CellStyle {
	s.WrapText = wrap
	return s
}

// String is a compact description used by Describe.
func (s CellStyle) String() string {
	return fmt.Sprintf("fill=%q font=%+v borders=%+v numfmt=%q align=%s/%s rot=%d wrap=%t",
		s.FillColor, s.Font, s.Borders, s.NumberFormat, s.Horizontal, s.Vertical, s.TextRotation, s.WrapText)
}
