package xlsheet

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Reader loads xlsx packages into the workbook model. Options set the
// default font and date formats that read-back styles are compared with.
type Reader struct {
	opts *Options
}

// NewReader creates a Reader.
func NewReader(opts ...Option) *Reader {
	return &Reader{opts: newOptions(opts)}
}

// Open reads the package at path.
func Open(path string, opts ...Option) (*Workbook, error) {
	return NewReader(opts...).ReadFile(path)
}

// OpenReader reads a package from in.
func OpenReader(in io.Reader, opts ...Option) (*Workbook, error) {
	return NewReader(opts...).Read(in)
}

// ReadFile reads the package at path.
func (r *Reader) ReadFile(path string) (*Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	return r.readBytes(data)
}

// Read reads a package from in.
func (r *Reader) Read(in io.Reader) (*Workbook, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read package: %w", err)
	}
	return r.readBytes(data)
}

func (r *Reader) readBytes(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	defer f.Close()
	index, err := indexPackage(data)
	if err != nil {
		return nil, err
	}
	return r.read(f, index)
}

func (r *Reader) read(f *excelize.File, index map[string]*sheetIndex) (*Workbook, error) {
	wb := &Workbook{opts: r.opts}
	styles := &styleReader{f: f, opts: r.opts, cache: make(map[int]readStyle)}

	for _, name := range f.GetSheetList() {
		s := wb.AddSheet(name)
		idx, ok := index[name]
		if !ok {
			idx = &sheetIndex{}
		}
		if err := r.readSheet(f, s, idx, styles); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
	}

	for _, dn := range f.GetDefinedName() {
		if dn.Scope != "" && dn.Scope != "Workbook" {
			r.opts.logger.WithFields(logrus.Fields{"name": dn.Name, "scope": dn.Scope}).Debug("skipping sheet-scoped name")
			continue
		}
		sheet, rng, err := parseRefersTo(dn.RefersTo)
		if err == nil {
			err = wb.AddNamedRange(dn.Name, sheet, rng)
		}
		if err != nil {
			r.opts.logger.WithError(err).WithField("name", dn.Name).Warn("skipping named range")
		}
	}
	return wb, nil
}

// parseRefersTo splits "'My Sheet'!$A$1:$B$2" into sheet name and range.
func parseRefersTo(s string) (string, CellRange, error) {
	s = strings.TrimPrefix(s, "=")
	i := strings.LastIndex(s, "!")
	if i <= 0 {
		return "", CellRange{}, invalid("named range target", s, ErrInvalidReference)
	}
	sheet := s[:i]
	if len(sheet) >= 2 && sheet[0] == '\'' && sheet[len(sheet)-1] == '\'' {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}
	rng, err := ParseRange(s[i+1:])
	if err != nil {
		return "", CellRange{}, err
	}
	return sheet, rng, nil
}

// rawValues streams the stored values of a sheet. Cells inside merged
// ranges keep their own stored value.
func rawValues(f *excelize.File, sheet string) (map[CellPosition]string, error) {
	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[CellPosition]string)
	for row := 0; rows.Next(); row++ {
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}
		for col, v := range cols {
			if v != "" {
				values[Pos(col, row)] = v
			}
		}
	}
	return values, rows.Error()
}

func (r *Reader) readSheet(f *excelize.File, s *Sheet, idx *sheetIndex, styles *styleReader) error {
	name := s.name
	log := r.opts.logger.WithField("sheet", name)

	values, err := rawValues(f, name)
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}
	links := make(map[CellPosition]*Hyperlink, len(idx.links))
	for _, ref := range idx.links {
		anchor := strings.SplitN(ref, ":", 2)[0]
		pos, err := ParsePosition(anchor)
		if err != nil {
			log.WithError(err).WithField("ref", ref).Warn("skipping hyperlink")
			continue
		}
		if has, target, err := f.GetCellHyperLink(name, anchor); err == nil && has && target != "" {
			links[pos] = &Hyperlink{URL: target}
		}
	}

	for _, c := range idx.cells {
		if err := r.readCell(f, s, c, values[c.pos], links[c.pos], styles); err != nil {
			return err
		}
		delete(links, c.pos)
	}
	for pos, link := range links {
		s.cells[pos] = Cell{Value: Text(""), Hyperlink: link}
	}
	r.readSizes(s, idx)

	if panes, err := f.GetPanes(name); err != nil {
		log.WithError(err).Warn("read panes")
	} else if panes.Freeze && (panes.XSplit > 0 || panes.YSplit > 0) {
		if err := s.FreezePanes(panes.YSplit, panes.XSplit); err != nil {
			log.WithError(err).Warn("skipping frozen pane")
		}
	}

	merges, err := f.GetMergeCells(name)
	if err != nil {
		log.WithError(err).Warn("read merged cells")
	}
	for _, m := range merges {
		rng, err := ParseRange(m.GetStartAxis() + ":" + m.GetEndAxis())
		if err == nil {
			err = s.MergeCells(rng)
		}
		if err != nil {
			log.WithError(err).Warn("skipping merged range")
		}
	}

	dvs, err := f.GetDataValidations(name)
	if err != nil {
		log.WithError(err).Warn("read data validations")
	}
	for _, dv := range dvs {
		rule := modelValidation(dv)
		for _, ref := range strings.Fields(dv.Sqref) {
			rng, err := ParseRange(ref)
			if err == nil {
				err = s.AddValidation(rng, rule)
			}
			if err != nil {
				log.WithError(err).WithField("range", ref).Warn("skipping data validation")
			}
		}
	}

	log.WithFields(logrus.Fields{
		"cells":       s.Len(),
		"merges":      len(s.merges),
		"validations": len(s.validations),
	}).Debug("sheet read")
	return nil
}

func (r *Reader) readCell(f *excelize.File, s *Sheet, c indexedCell, raw string, link *Hyperlink, styles *styleReader) error {
	st, err := styles.lookup(c.style)
	if err != nil {
		return fmt.Errorf("cell %s: %w", c.pos.Ref(), err)
	}
	value, err := readValue(f, s.name, c, raw, st.isDate)
	if err != nil {
		return fmt.Errorf("cell %s: %w", c.pos.Ref(), err)
	}
	if value.IsEmpty() && c.style == 0 && link == nil {
		return nil
	}

	style := st.style
	if value.IsDate() && r.opts.isDefaultDateFormat(style.NumberFormat) {
		style.NumberFormat = ""
	}
	s.cells[c.pos] = Cell{Value: value, Style: style, Hyperlink: link}
	return nil
}

// readValue infers the variant of a stored value. Formulas win over their
// cached result; numbers under a date format become dates.
func readValue(f *excelize.File, sheet string, c indexedCell, raw string, isDate bool) (CellValue, error) {
	if c.formula {
		formula := c.formulaText
		if formula == "" {
			var err error
			if formula, err = f.GetCellFormula(sheet, c.pos.Ref()); err != nil {
				return CellValue{}, err
			}
		}
		if formula != "" {
			return Formula("=" + formula), nil
		}
	}
	if raw == "" {
		return Text(""), nil
	}
	switch c.typ {
	case "s", "inlineStr", "str", "e", "d":
		return Text(raw), nil
	case "b":
		if raw == "1" || strings.EqualFold(raw, "true") {
			return Text("TRUE"), nil
		}
		return Text("FALSE"), nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Text(raw), nil
	}
	if isDate {
		serial, _ := d.Float64()
		return NaiveDateTime(serialToTime(serial)), nil
	}
	if d.IsInteger() && d.Abs().LessThanOrEqual(decimal.NewFromInt(math.MaxInt64)) {
		return Integer(d.IntPart()), nil
	}
	return Decimal(d), nil
}

// readSizes applies the row and column records the sheet declares.
func (r *Reader) readSizes(s *Sheet, idx *sheetIndex) {
	for _, c := range idx.cols {
		size, ok := declaredSize(c.hidden, c.width, MaxColumnWidth)
		if !ok {
			continue
		}
		for col := c.min - 1; col < c.max && col < excelize.MaxColumns; col++ {
			s.columns[col] = size
		}
	}
	for row, rec := range idx.rows {
		if size, ok := declaredSize(rec.hidden, rec.height, MaxRowHeight); ok {
			s.rows[row] = size
		}
	}
}

func declaredSize(hidden bool, v, limit float64) (Dimension, bool) {
	if hidden {
		return Hidden, true
	}
	if v > 0 && v <= limit {
		return Size(v), true
	}
	return Dimension{}, false
}

func modelValidation(dv *excelize.DataValidation) ValidationRule {
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	return ValidationRule{
		Type:             ParseValidationType(dv.Type),
		Operator:         ParseValidationOperator(dv.Operator),
		Formula1:         html.UnescapeString(dv.Formula1),
		Formula2:         html.UnescapeString(dv.Formula2),
		AllowBlank:       dv.AllowBlank,
		ShowInputMessage: dv.ShowInputMessage,
		InputTitle:       deref(dv.PromptTitle),
		InputMessage:     deref(dv.Prompt),
		ShowErrorMessage: dv.ShowErrorMessage,
		ErrorStyle:       ParseErrorStyle(deref(dv.ErrorStyle)),
		ErrorTitle:       deref(dv.ErrorTitle),
		ErrorMessage:     deref(dv.Error),
	}
}

// readStyle is a decoded package style.
type readStyle struct {
	style  CellStyle
	isDate bool
}

// styleReader decodes package styles once per id.
type styleReader struct {
	f     *excelize.File
	opts  *Options
	cache map[int]readStyle
}

func (sr *styleReader) lookup(id int) (readStyle, error) {
	if id == 0 {
		return readStyle{}, nil
	}
	if rs, ok := sr.cache[id]; ok {
		return rs, nil
	}
	st, err := sr.f.GetStyle(id)
	if err != nil {
		return readStyle{}, fmt.Errorf("%w: %d: %v", ErrStyleNotFound, id, err)
	}
	rs := sr.decode(st)
	sr.cache[id] = rs
	return rs, nil
}

func (sr *styleReader) decode(st *excelize.Style) readStyle {
	var cs CellStyle
	if st.Font != nil {
		font := CellFont{
			Size:      st.Font.Size,
			Family:    st.Font.Family,
			Color:     normalizeColor(st.Font.Color),
			Bold:      st.Font.Bold,
			Italic:    st.Font.Italic,
			Underline: st.Font.Underline != "" && st.Font.Underline != "none",
			Strike:    st.Font.Strike,
		}
		if font != sr.opts.defaultFont {
			cs.Font = font
		}
	}
	if st.Fill.Type == "pattern" && st.Fill.Pattern == 1 && len(st.Fill.Color) > 0 {
		cs.FillColor = normalizeColor(st.Fill.Color[0])
	}
	for _, b := range st.Border {
		edge := BorderEdge{Style: BorderStyle(b.Style), Color: normalizeColor(b.Color)}
		if !edge.Style.valid() || edge.Style == BorderNone {
			continue
		}
		switch b.Type {
		case "left":
			cs.Borders.Left = edge
		case "right":
			cs.Borders.Right = edge
		case "top":
			cs.Borders.Top = edge
		case "bottom":
			cs.Borders.Bottom = edge
		}
	}
	if a := st.Alignment; a != nil {
		cs.Horizontal = parseHorizontal(a.Horizontal)
		cs.Vertical = parseVertical(a.Vertical)
		cs.TextRotation = modelRotation(a.TextRotation)
		cs.WrapText = a.WrapText
	}
	switch {
	case st.CustomNumFmt != nil:
		cs.NumberFormat = *st.CustomNumFmt
	case st.NumFmt != 0:
		cs.NumberFormat = toolkitBuiltinCodes[st.NumFmt]
	}
	return readStyle{style: cs, isDate: cs.NumberFormat != "" && IsDateFormat(cs.NumberFormat)}
}
