package xlsheet

import (
	"slices"
	"strings"

	"github.com/xuri/efp"
)

// FormulaRef is a cell or range a formula reads from. Sheet is empty for
// references on the formula's own sheet.
type FormulaRef struct {
	Sheet string
	Range CellRange
}

func (r FormulaRef) String() string {
	if r.Sheet == "" {
		return r.Range.Ref()
	}
	return quoteSheetName(r.Sheet) + "!" + r.Range.Ref()
}

// FormulaReferences tokenizes a formula and returns the cell and range
// references it contains, in order of first appearance. Defined names and
// whole-row or whole-column references are skipped.
func FormulaReferences(formula string) []FormulaRef {
	formula = strings.TrimPrefix(strings.TrimSpace(formula), "=")
	if formula == "" {
		return nil
	}
	ps := efp.ExcelParser()
	tokens := ps.Parse("=" + formula)

	var refs []FormulaRef
	seen := make(map[FormulaRef]bool)
	for _, tok := range tokens {
		if tok.TType != efp.TokenTypeOperand || tok.TSubType != efp.TokenSubTypeRange {
			continue
		}
		ref, ok := parseFormulaRef(tok.TValue)
		if !ok || seen[ref] {
			continue
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	return refs
}

// FormulaNames returns the defined names a formula uses, in order of first
// appearance.
func FormulaNames(formula string) []string {
	formula = strings.TrimPrefix(strings.TrimSpace(formula), "=")
	if formula == "" {
		return nil
	}
	ps := efp.ExcelParser()
	var names []string
	for _, tok := range ps.Parse("=" + formula) {
		if tok.TType != efp.TokenTypeOperand || tok.TSubType != efp.TokenSubTypeRange {
			continue
		}
		v := tok.TValue
		if strings.ContainsAny(v, "!:$") || slices.Contains(names, v) {
			continue
		}
		if _, err := ParsePosition(v); err == nil {
			continue
		}
		names = append(names, v)
	}
	return names
}

func parseFormulaRef(s string) (FormulaRef, bool) {
	var sheet string
	if i := strings.LastIndex(s, "!"); i >= 0 {
		sheet = strings.ReplaceAll(strings.Trim(s[:i], "'"), "''", "'")
		s = s[i+1:]
	}
	rng, err := ParseRange(s)
	if err != nil {
		return FormulaRef{}, false
	}
	return FormulaRef{Sheet: sheet, Range: rng}, true
}

// FormulaCells returns the positions of formula cells in row-major order.
func (s *Sheet) FormulaCells() []CellPosition {
	var out []CellPosition
	for _, pos := range s.Positions() {
		if s.cells[pos].Value.IsFormula() {
			out = append(out, pos)
		}
	}
	return out
}
