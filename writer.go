package xlsheet

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Writer serializes a Workbook into an xlsx package.
type Writer struct {
	opts *Options
}

// NewWriter creates a Writer. Only the logger option is used; defaults such
// as the date formats come from the workbook.
func NewWriter(opts ...Option) *Writer {
	return &Writer{opts: newOptions(opts)}
}

// Save writes wb to path.
func Save(wb *Workbook, path string, opts ...Option) error {
	return NewWriter(opts...).WriteFile(wb, path)
}

// SaveBytes serializes wb into memory.
func SaveBytes(wb *Workbook, opts ...Option) ([]byte, error) {
	return NewWriter(opts...).WriteBytes(wb)
}

// WriteFile writes wb to path. A partially written file is removed.
func (w *Writer) WriteFile(wb *Workbook, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file %q: %w", path, err)
	}
	defer out.Close()

	if err := w.Write(wb, out); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// WriteBytes serializes wb and returns the package bytes.
func (w *Writer) WriteBytes(wb *Workbook) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.Write(wb, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes wb to out.
func (w *Writer) Write(wb *Workbook, out io.Writer) error {
	f, err := w.build(wb)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(out); err != nil {
		return fmt.Errorf("write package: %w", err)
	}
	return nil
}

// build assembles the whole package in an excelize file.
func (w *Writer) build(wb *Workbook) (*excelize.File, error) {
	if err := checkSheetNames(wb); err != nil {
		return nil, err
	}

	for _, issue := range Check(wb) {
		w.opts.logger.WithField("sheet", issue.Sheet).Warn(issue.String())
	}

	table := BuildStyleTable(wb)
	w.opts.logger.WithFields(logrus.Fields{
		"sheets":  len(wb.sheets),
		"styles":  table.Len(),
		"fonts":   len(table.fonts),
		"fills":   len(table.fills),
		"borders": len(table.borders),
		"numfmts": len(table.numFmts.custom),
	}).Debug("style table built")

	f := excelize.NewFile()
	committed := false
	defer func() {
		if !committed {
			f.Close()
		}
	}()

	styleIDs, err := registerStyles(f, table)
	if err != nil {
		return nil, err
	}

	defaultSheet := f.GetSheetName(0)
	for i, s := range wb.sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, s.name); err != nil {
				return nil, fmt.Errorf("sheet %q: %w", s.name, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", s.name, err)
		}
		if err := w.writeSheet(f, s, table, styleIDs); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", s.name, err)
		}
	}

	for _, n := range wb.names {
		if err := f.SetDefinedName(&excelize.DefinedName{Name: n.Name, RefersTo: n.RefersTo()}); err != nil {
			return nil, fmt.Errorf("named range %q: %w", n.Name, err)
		}
	}
	f.SetActiveSheet(0)

	committed = true
	return f, nil
}

// checkSheetNames rejects empty workbooks and names the package cannot hold
// twice. Sheet names compare case-insensitively.
func checkSheetNames(wb *Workbook) error {
	if len(wb.sheets) == 0 {
		return ErrNoSheets
	}
	seen := make(map[string]bool, len(wb.sheets))
	for _, s := range wb.sheets {
		key := strings.ToLower(s.name)
		if seen[key] {
			return fmt.Errorf("%w: %q", ErrDuplicateSheet, s.name)
		}
		seen[key] = true
	}
	return nil
}

// registerStyles creates one toolkit style per table entry and returns the
// toolkit id of each entry. Entry 0 maps to the package default style when
// it uses the stock font.
func registerStyles(f *excelize.File, table *StyleTable) ([]int, error) {
	if err := declareNumberFormats(f, table); err != nil {
		return nil, err
	}
	ids := make([]int, table.Len())
	for i, e := range table.entries {
		if i == 0 && e.Definition == (StyleDefinition{Font: DefaultFont()}) {
			continue
		}
		id, err := f.NewStyle(toolkitStyle(e.Definition, e.NumFmtID))
		if err != nil {
			return nil, fmt.Errorf("style %d: %w", i, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// declareNumberFormats registers the table's declared codes in id order.
// The toolkit numbers a new code one past the highest declared id, starting
// at 164, so this makes the package ids equal to the table's. Each code is
// declared through the first entry that uses it; unused slots get a bare
// style.
func declareNumberFormats(f *excelize.File, table *StyleTable) error {
	for _, nf := range table.numFmts.Declared() {
		code := nf.Code
		st := &excelize.Style{CustomNumFmt: &code}
		for _, e := range table.entries {
			if e.NumFmtID == nf.ID {
				st = toolkitStyle(e.Definition, e.NumFmtID)
				break
			}
		}
		if _, err := f.NewStyle(st); err != nil {
			return fmt.Errorf("number format %d %q: %w", nf.ID, nf.Code, err)
		}
	}
	return nil
}

// toolkitStyle converts a definition into the toolkit's style record.
// Spreadsheet built-in formats are referenced by id, the rest by code.
func toolkitStyle(def StyleDefinition, numFmtID int) *excelize.Style {
	st := &excelize.Style{
		Font: &excelize.Font{
			Bold:   def.Font.Bold,
			Italic: def.Font.Italic,
			Strike: def.Font.Strike,
			Family: def.Font.Family,
			Size:   def.Font.Size,
			Color:  def.Font.Color,
		},
	}
	if def.Font.Underline {
		st.Font.Underline = "single"
	}
	if def.Fill != "" {
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{def.Fill}}
	}
	for _, e := range []struct {
		side string
		edge BorderEdge
	}{
		{"left", def.Borders.Left},
		{"right", def.Borders.Right},
		{"top", def.Borders.Top},
		{"bottom", def.Borders.Bottom},
	} {
		if e.edge.Style == BorderNone {
			continue
		}
		st.Border = append(st.Border, excelize.Border{Type: e.side, Color: e.edge.Color, Style: int(e.edge.Style)})
	}
	if def.Horizontal != HAlignUnset || def.Vertical != VAlignUnset || def.TextRotation != 0 || def.WrapText {
		st.Alignment = &excelize.Alignment{
			Horizontal:   def.Horizontal.String(),
			Vertical:     def.Vertical.String(),
			TextRotation: toolkitRotation(def.TextRotation),
			WrapText:     def.WrapText,
		}
	}
	switch {
	case def.NumberFormat == "":
	case isBuiltinFormatID(numFmtID):
		st.NumFmt = numFmtID
	default:
		code := def.NumberFormat
		st.CustomNumFmt = &code
	}
	return st
}

// toolkitRotation maps -90..90 degrees onto the package range, where
// 91..180 encode downward angles.
func toolkitRotation(deg int) int {
	if deg < 0 {
		return 90 - deg
	}
	return deg
}

// modelRotation inverts toolkitRotation.
func modelRotation(v int) int {
	if v > 90 && v <= 180 {
		return 90 - v
	}
	if v > 180 {
		return 0
	}
	return v
}

// cellWriter writes one value into the package. It handles every variant.
type cellWriter struct {
	f     *excelize.File
	sheet string
	ref   string
}

func (cw cellWriter) Text(s string) error {
	if s == "" {
		return nil
	}
	return cw.f.SetCellStr(cw.sheet, cw.ref, s)
}

func (cw cellWriter) Decimal(d decimal.Decimal) error {
	v, _ := d.Float64()
	return cw.f.SetCellFloat(cw.sheet, cw.ref, v, -1, 64)
}

func (cw cellWriter) Integer(n int64) error {
	return cw.f.SetCellValue(cw.sheet, cw.ref, n)
}

func (cw cellWriter) NaiveDateTime(t time.Time) error {
	return cw.f.SetCellFloat(cw.sheet, cw.ref, timeToSerial(t), -1, 64)
}

func (cw cellWriter) ZonedDateTime(t time.Time) error {
	return cw.f.SetCellFloat(cw.sheet, cw.ref, timeToSerial(t), -1, 64)
}

func (cw cellWriter) Formula(formula string) error {
	return cw.f.SetCellFormula(cw.sheet, cw.ref, strings.TrimPrefix(formula, "="))
}

// writeSheet emits cells row by row, then the structural extras in a fixed
// order: frozen pane, columns, rows, merges, hyperlinks, validations.
func (w *Writer) writeSheet(f *excelize.File, s *Sheet, table *StyleTable, styleIDs []int) error {
	name := s.name
	positions := s.Positions()

	for _, pos := range positions {
		c := s.cells[pos]
		ref := pos.Ref()
		if err := Visit[error](c.Value, cellWriter{f: f, sheet: name, ref: ref}); err != nil {
			return fmt.Errorf("cell %s: %w", ref, err)
		}
		if id := styleIDs[table.IndexOf(c)]; id != 0 {
			if err := f.SetCellStyle(name, ref, ref, id); err != nil {
				return fmt.Errorf("style cell %s: %w", ref, err)
			}
		}
	}

	if p, ok := s.FrozenPane(); ok {
		tl := p.TopLeftCell().Ref()
		if err := f.SetPanes(name, &excelize.Panes{
			Freeze:      true,
			XSplit:      p.Columns,
			YSplit:      p.Rows,
			TopLeftCell: tl,
			ActivePane:  p.ActivePane(),
			Selection:   []excelize.Selection{{SQRef: tl, ActiveCell: tl, Pane: p.ActivePane()}},
		}); err != nil {
			return fmt.Errorf("freeze panes: %w", err)
		}
	}

	if err := w.writeColumns(f, s); err != nil {
		return err
	}
	if err := w.writeRows(f, s); err != nil {
		return err
	}

	for _, m := range s.merges {
		if err := f.MergeCell(name, m.Min.Ref(), m.Max.Ref()); err != nil {
			return fmt.Errorf("merge %s: %w", m, err)
		}
	}

	for _, pos := range positions {
		link := s.cells[pos].Hyperlink
		if link == nil || link.URL == "" {
			continue
		}
		if err := setHyperlink(f, name, pos.Ref(), link); err != nil {
			return fmt.Errorf("hyperlink %s: %w", pos, err)
		}
	}

	for _, v := range s.Validations() {
		if err := f.AddDataValidation(name, toolkitValidation(v)); err != nil {
			return fmt.Errorf("validation %s: %w", v.Range, err)
		}
	}

	if used, ok := s.UsedRange(); ok {
		dim := used.Min.Ref() + ":" + used.Max.Ref()
		if err := f.SetSheetDimension(name, dim); err != nil {
			w.opts.logger.WithError(err).WithField("sheet", name).Warn("set sheet dimension")
		}
	}
	return nil
}

func (w *Writer) writeColumns(f *excelize.File, s *Sheet) error {
	cols := s.ColumnWidths()
	keys := make([]int, 0, len(cols))
	for k := range cols {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, col := range keys {
		d := cols[col]
		letters := ColumnLetters(col)
		switch d.Mode {
		case SizeHidden:
			if err := f.SetColVisible(s.name, letters, false); err != nil {
				return fmt.Errorf("hide column %s: %w", letters, err)
			}
		case SizeAutoExpand:
			// Auto-fit needs font metrics; the column keeps the default width.
			w.opts.logger.WithFields(logrus.Fields{"sheet": s.name, "column": letters}).Debug("auto-expand column left at default width")
		default:
			if err := f.SetColWidth(s.name, letters, letters, d.Value); err != nil {
				return fmt.Errorf("column %s width: %w", letters, err)
			}
		}
	}
	return nil
}

func (w *Writer) writeRows(f *excelize.File, s *Sheet) error {
	rows := s.RowHeights()
	keys := make([]int, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, row := range keys {
		d := rows[row]
		var err error
		switch d.Mode {
		case SizeHidden:
			err = f.SetRowVisible(s.name, row+1, false)
		case SizeAutoExpand:
			err = f.SetRowHeight(s.name, row+1, -1)
		default:
			err = f.SetRowHeight(s.name, row+1, d.Value)
		}
		if err != nil {
			return fmt.Errorf("row %d height: %w", row+1, err)
		}
	}
	return nil
}

// setHyperlink writes an external relationship, or an in-document location
// for URLs starting with "#".
func setHyperlink(f *excelize.File, sheet, ref string, link *Hyperlink) error {
	var opts []excelize.HyperlinkOpts
	if link.Tooltip != "" {
		tip := link.Tooltip
		opts = append(opts, excelize.HyperlinkOpts{Tooltip: &tip})
	}
	if loc, ok := strings.CutPrefix(link.URL, "#"); ok {
		return f.SetCellHyperLink(sheet, ref, loc, "Location", opts...)
	}
	return f.SetCellHyperLink(sheet, ref, link.URL, "External", opts...)
}

// toolkitValidation maps a rule onto the toolkit's record. Message fields
// are carried only when their show flag is set.
func toolkitValidation(v RangeValidation) *excelize.DataValidation {
	r := v.Rule
	dv := excelize.NewDataValidation(r.AllowBlank)
	dv.Sqref = v.Range.Ref()
	dv.Type = r.Type.String()
	if r.Type != ValidateList && r.Type != ValidateCustom {
		dv.Operator = r.Operator.String()
	}
	dv.Formula1 = r.Formula1
	dv.Formula2 = r.Formula2
	if r.ShowInputMessage {
		title, msg := r.InputTitle, r.InputMessage
		dv.ShowInputMessage = true
		dv.PromptTitle = &title
		dv.Prompt = &msg
	}
	if r.ShowErrorMessage {
		style, title, msg := r.ErrorStyle.String(), r.ErrorTitle, r.ErrorMessage
		dv.ShowErrorMessage = true
		dv.ErrorStyle = &style
		dv.ErrorTitle = &title
		dv.Error = &msg
	}
	return dv
}
