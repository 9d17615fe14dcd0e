package xlsheet

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

// indexedCell is one <c> element as stored in a worksheet part.
type indexedCell struct {
	pos     CellPosition
	style   int
	typ     string
	formula bool
	// formulaText is empty for cells that share their master's formula.
	formulaText string
}

type rowRecord struct {
	height float64
	custom bool
	hidden bool
}

type colRecord struct {
	min, max int // 1-based, inclusive
	width    float64
	hidden   bool
}

// sheetIndex lists what a worksheet part declares: stored cells in document
// order, row and column records, and hyperlink anchors.
type sheetIndex struct {
	cells []indexedCell
	rows  map[int]rowRecord // keyed by 0-based row
	cols  []colRecord
	links []string
}

// indexPackage scans every worksheet part of an xlsx package and returns the
// indexes keyed by sheet name.
func indexPackage(data []byte) (map[string]*sheetIndex, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	parts := make(map[string]*zip.File, len(zr.File))
	for _, zf := range zr.File {
		parts[zf.Name] = zf
	}

	sheets, err := workbookSheets(parts)
	if err != nil {
		return nil, err
	}
	targets, err := workbookTargets(parts)
	if err != nil {
		return nil, err
	}

	out := make(map[string]*sheetIndex, len(sheets))
	for _, s := range sheets {
		target, ok := targets[s.rid]
		if !ok {
			continue
		}
		zf, ok := parts[target]
		if !ok {
			continue
		}
		idx, err := indexSheetPart(zf)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", s.name, err)
		}
		out[s.name] = idx
	}
	return out, nil
}

type workbookSheet struct {
	name string
	rid  string
}

func workbookSheets(parts map[string]*zip.File) ([]workbookSheet, error) {
	var sheets []workbookSheet
	err := walkPart(parts, "xl/workbook.xml", func(_ *xml.Decoder, se xml.StartElement) error {
		if se.Name.Local != "sheet" {
			return nil
		}
		var s workbookSheet
		for _, attr := range se.Attr {
			switch {
			case attr.Name.Local == "name":
				s.name = attr.Value
			case attr.Name.Local == "id" && attr.Name.Space != "":
				s.rid = attr.Value
			}
		}
		sheets = append(sheets, s)
		return nil
	})
	return sheets, err
}

// workbookTargets maps relationship ids to part names.
func workbookTargets(parts map[string]*zip.File) (map[string]string, error) {
	targets := make(map[string]string)
	err := walkPart(parts, "xl/_rels/workbook.xml.rels", func(_ *xml.Decoder, se xml.StartElement) error {
		if se.Name.Local != "Relationship" {
			return nil
		}
		var id, target string
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "Id":
				id = attr.Value
			case "Target":
				target = attr.Value
			}
		}
		if strings.HasPrefix(target, "/") {
			target = strings.TrimPrefix(target, "/")
		} else {
			target = path.Join("xl", target)
		}
		targets[id] = target
		return nil
	})
	return targets, err
}

func indexSheetPart(zf *zip.File) (*sheetIndex, error) {
	idx := &sheetIndex{rows: make(map[int]rowRecord)}
	row, col := -1, -1
	err := walkFile(zf, func(dec *xml.Decoder, se xml.StartElement) error {
		switch se.Name.Local {
		case "row":
			var rec rowRecord
			r := 0
			for _, attr := range se.Attr {
				var err error
				switch attr.Name.Local {
				case "r":
					r, err = strconv.Atoi(attr.Value)
				case "ht":
					rec.height, err = strconv.ParseFloat(attr.Value, 64)
				case "customHeight":
					rec.custom = xmlBool(attr.Value)
				case "hidden":
					rec.hidden = xmlBool(attr.Value)
				}
				if err != nil {
					return fmt.Errorf("row attribute %s=%q: %w", attr.Name.Local, attr.Value, err)
				}
			}
			if r > 0 {
				row = r - 1
			} else {
				row++
			}
			col = -1
			if rec.hidden || rec.custom {
				idx.rows[row] = rec
			}

		case "c":
			var c struct {
				R string `xml:"r,attr"`
				S int    `xml:"s,attr"`
				T string `xml:"t,attr"`
				F *struct {
					Text string `xml:",chardata"`
				} `xml:"f"`
			}
			if err := dec.DecodeElement(&c, &se); err != nil {
				return err
			}
			pos := Pos(col+1, row)
			if c.R != "" {
				p, err := ParsePosition(c.R)
				if err != nil {
					return err
				}
				pos = p
			}
			col = pos.Column
			cell := indexedCell{pos: pos, style: c.S, typ: c.T}
			if c.F != nil {
				cell.formula = true
				cell.formulaText = strings.TrimSpace(c.F.Text)
			}
			idx.cells = append(idx.cells, cell)

		case "col":
			var c struct {
				Min    int     `xml:"min,attr"`
				Max    int     `xml:"max,attr"`
				Width  float64 `xml:"width,attr"`
				Hidden bool    `xml:"hidden,attr"`
			}
			if err := dec.DecodeElement(&c, &se); err != nil {
				return err
			}
			if c.Min > 0 && c.Max >= c.Min {
				idx.cols = append(idx.cols, colRecord{min: c.Min, max: c.Max, width: c.Width, hidden: c.Hidden})
			}

		case "hyperlink":
			for _, attr := range se.Attr {
				if attr.Name.Local == "ref" {
					idx.links = append(idx.links, attr.Value)
				}
			}
		}
		return nil
	})
	return idx, err
}

func xmlBool(s string) bool {
	return s == "1" || strings.EqualFold(s, "true")
}

func walkPart(parts map[string]*zip.File, name string, fn func(*xml.Decoder, xml.StartElement) error) error {
	zf, ok := parts[name]
	if !ok {
		return fmt.Errorf("%w: missing part %s", ErrInvalidPackage, name)
	}
	return walkFile(zf, fn)
}

// walkFile calls fn for every start element of a part. fn may consume the
// element with DecodeElement.
func walkFile(zf *zip.File, fn func(*xml.Decoder, xml.StartElement) error) error {
	rc, err := zf.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", zf.Name, err)
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parse %s: %w", zf.Name, err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			if err := fn(dec, se); err != nil {
				return fmt.Errorf("parse %s: %w", zf.Name, err)
			}
		}
	}
}
