package xlsheet

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestIndexPackage(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("Second")
	require.NoError(t, err)

	require.NoError(t, f.SetCellValue("Sheet1", "A1", "x"))
	require.NoError(t, f.SetCellFormula("Sheet1", "B2", "A1&A1"))
	styleID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "C5", "C5", styleID))
	require.NoError(t, f.SetColWidth("Sheet1", "B", "D", 20))
	require.NoError(t, f.SetRowVisible("Sheet1", 7, false))
	require.NoError(t, f.SetRowHeight("Sheet1", 2, 30))
	require.NoError(t, f.SetCellHyperLink("Sheet1", "A1", "https://example.com", "External"))
	require.NoError(t, f.SetCellValue("Second", "E3", 4))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	index, err := indexPackage(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, index, 2)

	first := index["Sheet1"]
	require.NotNil(t, first)
	byRef := make(map[string]indexedCell)
	for _, c := range first.cells {
		byRef[c.pos.Ref()] = c
	}
	assert.Equal(t, "s", byRef["A1"].typ)
	assert.True(t, byRef["B2"].formula)
	assert.Equal(t, "A1&A1", byRef["B2"].formulaText)
	assert.Equal(t, styleID, byRef["C5"].style)

	require.Len(t, first.cols, 1)
	assert.Equal(t, colRecord{min: 2, max: 4, width: 20}, first.cols[0])
	assert.True(t, first.rows[6].hidden)
	assert.Equal(t, rowRecord{height: 30, custom: true}, first.rows[1])
	_, ok := first.rows[0]
	assert.False(t, ok)
	assert.Equal(t, []string{"A1"}, first.links)

	second := index["Second"]
	require.NotNil(t, second)
	require.Len(t, second.cells, 1)
	assert.Equal(t, Pos(4, 2), second.cells[0].pos)
}

func TestIndexPackage_MissingWorkbook(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("xl/worksheets/sheet1.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<worksheet/>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = indexPackage(buf.Bytes())
	assert.ErrorIs(t, err, ErrInvalidPackage)
}
