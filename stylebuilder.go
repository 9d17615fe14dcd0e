package xlsheet

// StyleBuilder accumulates style changes on a working copy. The first
// invalid value is recorded by the call that supplied it; later calls are
// ignored and Build reports it.
type StyleBuilder struct {
	style CellStyle
	err   error
}

// NewStyleBuilder starts from the given style (usually CellStyle{}).
func NewStyleBuilder(base CellStyle) *StyleBuilder {
	return &StyleBuilder{style: base}
}

// Err returns the first error recorded so far.
func (b *StyleBuilder) Err() error { return b.err }

func (b *StyleBuilder) apply(fn func(CellStyle) (CellStyle, error)) *StyleBuilder {
	if b.err != nil {
		return b
	}
	s, err := fn(b.style)
	if err != nil {
		b.err = err
		return b
	}
	b.style = s
	return b
}

// fontOrDefault returns the working font, starting from DefaultFont when unset.
func (b *StyleBuilder) fontOrDefault() CellFont {
	if b.style.Font.IsZero() {
		return DefaultFont()
	}
	return b.style.Font
}

func (b *StyleBuilder) editFont(fn func(*CellFont)) *StyleBuilder {
	return b.apply(func(s CellStyle) (CellStyle, error) {
		f := b.fontOrDefault()
		fn(&f)
		return s.WithFont(f)
	})
}

// FillColor sets the background color.
func (b *StyleBuilder) FillColor(hex string) *StyleBuilder {
	return b.apply(func(s CellStyle) (CellStyle, error) { return s.WithFillColor(hex) })
}

// Font replaces the whole font.
func (b *StyleBuilder) Font(f CellFont) *StyleBuilder {
	return b.apply(func(s CellStyle) (CellStyle, error) { return s.WithFont(f) })
}

func (b *StyleBuilder) FontSize(size float64) *StyleBuilder {
	return b.editFont(func(f *CellFont) { f.Size = size })
}

func (b *StyleBuilder) FontFamily(family string) *StyleBuilder {
	return b.editFont(func(f *CellFont) { f.Family = family })
}

func (b *StyleBuilder) FontColor(hex string) *StyleBuilder {
	return b.editFont(func(f *CellFont) { f.Color = hex })
}

func (b *StyleBuilder) Bold(on bool) *StyleBuilder {
	return b.editFont(func(f *CellFont) { f.Bold = on })
}

func (b *StyleBuilder) Italic(on bool) *StyleBuilder {
	return b.editFont(func(f *CellFont) { f.Italic = on })
}

func (b *StyleBuilder) Underline(on bool) *StyleBuilder {
	return b.editFont(func(f *CellFont) { f.Underline = on })
}

func (b *StyleBuilder) Strike(on bool) *StyleBuilder {
	return b.editFont(func(f *CellFont) { f.Strike = on })
}

// Borders replaces all four edges.
func (b *StyleBuilder) Borders(borders CellBorders) *StyleBuilder {
	return b.apply(func(s CellStyle) (CellStyle, error) { return s.WithBorders(borders) })
}

// Outline sets the same edge on all four sides.
func (b *StyleBuilder) Outline(style BorderStyle, color string) *StyleBuilder {
	return b.apply(func(s CellStyle) (CellStyle, error) {
		o, err := Outline(style, color)
		if err != nil {
			return s, err
		}
		return s.WithBorders(o)
	})
}

// BottomBorder sets only the bottom edge.
func (b *StyleBuilder) BottomBorder(style BorderStyle, color string) *StyleBuilder {
	return b.apply(func(s CellStyle) (CellStyle, error) {
		borders := s.Borders
		borders.Bottom = BorderEdge{Style: style, Color: color}
		return s.WithBorders(borders)
	})
}

func (b *StyleBuilder) NumberFormat(code string) *StyleBuilder {
	return b.apply(func(s CellStyle) (CellStyle, error) { return s.WithNumberFormat(code), nil })
}

func (b *StyleBuilder) Align(h HorizontalAlignment, v VerticalAlignment) *StyleBuilder {
	return b.apply(func(s CellStyle) (CellStyle, error) { return s.WithAlignment(h, v), nil })
}

func (b *StyleBuilder) Rotation(degrees int) *StyleBuilder {
	return b.apply(func(s CellStyle) (CellStyle, error) { return s.WithRotation(degrees) })
}

func (b *StyleBuilder) Wrap(on bool) *StyleBuilder {
	return b.apply(func(s CellStyle) (CellStyle, error) { return s.WithWrap(on), nil })
}

// Build returns the finished style or the first recorded error.
func (b *StyleBuilder) Build() (CellStyle, error) {
	if b.err != nil {
		return CellStyle{}, b.err
	}
	if err := b.style.Validate(); err != nil {
		return CellStyle{}, err
	}
	return b.style.normalized(), nil
}
