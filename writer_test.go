package xlsheet

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func openPackage(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

// packageStyles reads the declared number formats and the numFmtId of every
// cell format record from xl/styles.xml.
func packageStyles(t *testing.T, data []byte) (map[int]string, []int) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	rc, err := zr.Open("xl/styles.xml")
	require.NoError(t, err)
	defer rc.Close()

	var styles struct {
		NumFmts []struct {
			ID   int    `xml:"numFmtId,attr"`
			Code string `xml:"formatCode,attr"`
		} `xml:"numFmts>numFmt"`
		CellXfs []struct {
			NumFmtID int `xml:"numFmtId,attr"`
		} `xml:"cellXfs>xf"`
	}
	require.NoError(t, xml.NewDecoder(rc).Decode(&styles))

	codes := make(map[int]string, len(styles.NumFmts))
	for _, nf := range styles.NumFmts {
		codes[nf.ID] = nf.Code
	}
	xfs := make([]int, len(styles.CellXfs))
	for i, xf := range styles.CellXfs {
		xfs[i] = xf.NumFmtID
	}
	return codes, xfs
}

// --- Document checks ---

func TestWriter_NoSheets(t *testing.T) {
	_, err := SaveBytes(NewWorkbook())
	assert.ErrorIs(t, err, ErrNoSheets)
}

func TestWriter_DuplicateSheetNames(t *testing.T) {
	wb := NewWorkbook()
	wb.AddSheet("Data")
	wb.AddSheet("DATA")
	_, err := SaveBytes(wb)
	assert.ErrorIs(t, err, ErrDuplicateSheet)
}

func TestWriter_SheetOrder(t *testing.T) {
	wb := NewWorkbook()
	for _, name := range []string{"First", "Second", "Third"} {
		require.NoError(t, wb.AddSheet(name).AddCell(Pos(0, 0), Text(name)))
	}
	data, err := SaveBytes(wb)
	require.NoError(t, err)

	f := openPackage(t, data)
	assert.Equal(t, []string{"First", "Second", "Third"}, f.GetSheetList())
	v, err := f.GetCellValue("Third", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Third", v)
}

// --- Cells ---

func TestWriter_NameAndNumber(t *testing.T) {
	wb := NewWorkbook()
	s := wb.AddSheet("Sheet1")
	require.NoError(t, s.AddCell(Pos(0, 0), Text("Name"), func(b *CellBuilder) { b.Style().Bold(true) }))
	require.NoError(t, s.AddCell(Pos(1, 0), Integer(42)))

	data, err := SaveBytes(wb)
	require.NoError(t, err)
	f := openPackage(t, data)

	v, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Name", v)
	v, err = f.GetCellValue("Sheet1", "B1")
	require.NoError(t, err)
	assert.Equal(t, "42", v)

	boldID, err := f.GetCellStyle("Sheet1", "A1")
	require.NoError(t, err)
	require.NotZero(t, boldID)
	st, err := f.GetStyle(boldID)
	require.NoError(t, err)
	require.NotNil(t, st.Font)
	assert.True(t, st.Font.Bold)

	plainID, err := f.GetCellStyle("Sheet1", "B1")
	require.NoError(t, err)
	assert.Zero(t, plainID)
}

func TestWriter_SharedStyleIsWrittenOnce(t *testing.T) {
	wb := NewWorkbook()
	s := wb.AddSheet("Data")
	for row := 0; row < 50; row++ {
		require.NoError(t, s.AddCell(Pos(0, row), Integer(int64(row)), func(b *CellBuilder) {
			b.Style().FillColor("FFC000")
		}))
	}
	data, err := SaveBytes(wb)
	require.NoError(t, err)
	f := openPackage(t, data)

	first, err := f.GetCellStyle("Data", "A1")
	require.NoError(t, err)
	require.NotZero(t, first)
	for row := 2; row <= 50; row++ {
		id, err := f.GetCellStyle("Data", Pos(0, row-1).Ref())
		require.NoError(t, err)
		assert.Equal(t, first, id)
	}
}

func TestWriter_ValueKinds(t *testing.T) {
	wb := NewWorkbook()
	s := wb.AddSheet("Data")
	require.NoError(t, s.AddCell(Pos(0, 0), Float(2.5)))
	require.NoError(t, s.AddCell(Pos(1, 0), Integer(-7)))
	require.NoError(t, s.AddCell(Pos(2, 0), NaiveDateTime(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))))
	require.NoError(t, s.AddCell(Pos(3, 0), Formula("=A1*B1")))
	require.NoError(t, s.AddCell(Pos(4, 0), Text("")))

	data, err := SaveBytes(wb)
	require.NoError(t, err)
	f := openPackage(t, data)

	raw := func(ref string) string {
		v, err := f.GetCellValue("Data", ref, excelize.Options{RawCellValue: true})
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "2.5", raw("A1"))
	assert.Equal(t, "-7", raw("B1"))
	assert.Equal(t, "45292.5", raw("C1"))
	assert.Equal(t, "", raw("E1"))

	formula, err := f.GetCellFormula("Data", "D1")
	require.NoError(t, err)
	assert.Equal(t, "A1*B1", formula)

	id, err := f.GetCellStyle("Data", "C1")
	require.NoError(t, err)
	st, err := f.GetStyle(id)
	require.NoError(t, err)
	require.NotNil(t, st.CustomNumFmt)
	assert.Equal(t, FormatISODateTime, *st.CustomNumFmt)
}

func TestWriter_NumberFormatIDs(t *testing.T) {
	wb := NewWorkbook()
	s := wb.AddSheet("Data")
	format := func(code string) func(*CellBuilder) {
		return func(b *CellBuilder) { b.Style().NumberFormat(code) }
	}
	require.NoError(t, s.AddCell(Pos(0, 0), Float(1.5), format(FormatFloat3)))
	require.NoError(t, s.AddCell(Pos(1, 0), Float(2.25), format(`#,##0.0 "kg"`)))
	require.NoError(t, s.AddCell(Pos(2, 0), NaiveDateTime(time.Date(2024, 1, 1, 9, 5, 0, 0, time.UTC)), format(FormatTime)))
	require.NoError(t, s.AddCell(Pos(3, 0), NaiveDateTime(time.Date(2024, 1, 1, 9, 5, 0, 0, time.UTC))))
	require.NoError(t, s.AddCell(Pos(4, 0), Float(3.5), format(FormatFloat2)))

	data, err := SaveBytes(wb)
	require.NoError(t, err)
	codes, xfs := packageStyles(t, data)

	assert.Equal(t, map[int]string{
		164: FormatISODateTime,
		165: FormatISODate,
		166: FormatLocalDateTime,
		167: FormatLocalDate,
		168: FormatFloat3,
		169: FormatFloat4,
		170: FormatTime,
		171: `#,##0.0 "kg"`,
	}, codes)
	for _, nf := range BuildStyleTable(wb).NumberFormats().Declared() {
		assert.Equal(t, nf.Code, codes[nf.ID], nf.ID)
	}

	f := openPackage(t, data)
	for ref, want := range map[string]int{"A1": 168, "B1": 171, "C1": 170, "D1": 164, "E1": 2} {
		id, err := f.GetCellStyle("Data", ref)
		require.NoError(t, err)
		require.Less(t, id, len(xfs), ref)
		assert.Equal(t, want, xfs[id], ref)
	}
}

func TestWriter_UndeclaredFormatsOnly(t *testing.T) {
	wb := NewWorkbook()
	require.NoError(t, wb.AddSheet("Data").AddCell(Pos(0, 0), Float(1.5), func(b *CellBuilder) {
		b.Style().NumberFormat(FormatFloat2)
	}))
	data, err := SaveBytes(wb)
	require.NoError(t, err)

	codes, _ := packageStyles(t, data)
	assert.Empty(t, codes)
	f := openPackage(t, data)
	id, err := f.GetCellStyle("Data", "A1")
	require.NoError(t, err)
	st, err := f.GetStyle(id)
	require.NoError(t, err)
	assert.Equal(t, 2, st.NumFmt)
	assert.Nil(t, st.CustomNumFmt)
}

// --- Sheet structure ---

func TestWriter_Structure(t *testing.T) {
	wb := NewWorkbook()
	s := wb.AddSheet("Report")
	require.NoError(t, s.AddCell(Pos(0, 0), Text("Title")))
	require.NoError(t, s.MergeCells(mustRange(t, "A1:D1")))
	require.NoError(t, s.AddCell(Pos(0, 1), Text("Home"), func(b *CellBuilder) {
		b.Link("https://example.com", "Open the site")
	}))
	require.NoError(t, s.FreezeRows(2))
	require.NoError(t, s.SetColumnWidth(0, Size(24)))
	require.NoError(t, s.SetColumnWidth(2, Hidden))
	require.NoError(t, s.SetRowHeight(0, Size(32)))
	require.NoError(t, s.SetRowHeight(4, Hidden))
	require.NoError(t, s.AddValidation(mustRange(t, "B3:B10"), ListValidation("Yes", "No")))
	require.NoError(t, wb.AddNamedRange("Answers", "Report", mustRange(t, "B3:B10")))

	data, err := SaveBytes(wb)
	require.NoError(t, err)
	f := openPackage(t, data)

	merges, err := f.GetMergeCells("Report")
	require.NoError(t, err)
	require.Len(t, merges, 1)
	assert.Equal(t, "A1", merges[0].GetStartAxis())
	assert.Equal(t, "D1", merges[0].GetEndAxis())
	assert.Equal(t, "Title", merges[0].GetCellValue())

	has, target, err := f.GetCellHyperLink("Report", "A2")
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, "https://example.com", target)

	panes, err := f.GetPanes("Report")
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 2, panes.YSplit)
	assert.Equal(t, 0, panes.XSplit)
	assert.Equal(t, "A3", panes.TopLeftCell)

	w, err := f.GetColWidth("Report", "A")
	require.NoError(t, err)
	assert.Equal(t, 24.0, w)
	visible, err := f.GetColVisible("Report", "C")
	require.NoError(t, err)
	assert.False(t, visible)

	h, err := f.GetRowHeight("Report", 1)
	require.NoError(t, err)
	assert.Equal(t, 32.0, h)
	visible, err = f.GetRowVisible("Report", 5)
	require.NoError(t, err)
	assert.False(t, visible)

	dvs, err := f.GetDataValidations("Report")
	require.NoError(t, err)
	require.Len(t, dvs, 1)
	assert.Equal(t, "B3:B10", dvs[0].Sqref)
	assert.Equal(t, "list", dvs[0].Type)

	names := f.GetDefinedName()
	require.Len(t, names, 1)
	assert.Equal(t, "Answers", names[0].Name)
	assert.Contains(t, names[0].RefersTo, "$B$3:$B$10")
}

func TestWriteFile(t *testing.T) {
	wb := NewWorkbook()
	require.NoError(t, wb.AddSheet("Data").AddCell(Pos(0, 0), Text("hello")))

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, Save(wb, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Data", "A1")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestWriteFile_BadPath(t *testing.T) {
	wb := NewWorkbook()
	wb.AddSheet("Data")
	err := Save(wb, filepath.Join(t.TempDir(), "missing", "out.xlsx"))
	assert.Error(t, err)
}

func TestRotationMapping(t *testing.T) {
	for _, deg := range []int{-90, -45, -1, 0, 1, 45, 90} {
		assert.Equal(t, deg, modelRotation(toolkitRotation(deg)), deg)
	}
	assert.Equal(t, 180, toolkitRotation(-90))
	assert.Equal(t, 0, modelRotation(255))
}
