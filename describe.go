package xlsheet

import (
	"fmt"
	"slices"
	"strings"
)

// Describe returns a human-readable tree of the workbook: sheets with their
// used range, frozen pane, sizes, merges, validations, hyperlinks and
// formulas, followed by named ranges. Useful for debugging generated files.
func Describe(wb *Workbook) string {
	table := BuildStyleTable(wb)

	var b strings.Builder
	fmt.Fprintf(&b, "Workbook: %d sheet(s), %d style(s)\n", len(wb.sheets), table.Len())
	for _, s := range wb.sheets {
		describeSheet(&b, s)
	}
	if len(wb.names) > 0 {
		b.WriteString("Named ranges:\n")
		for _, n := range wb.names {
			fmt.Fprintf(&b, "  %s = %s\n", n.Name, n.RefersTo())
		}
	}
	return b.String()
}

func describeSheet(b *strings.Builder, s *Sheet) {
	// Sheet header: Sheet "Data" A1:C10 (12 cells)
	fmt.Fprintf(b, "Sheet %q", s.name)
	if used, ok := s.UsedRange(); ok {
		fmt.Fprintf(b, " %s:%s", used.Min.Ref(), used.Max.Ref())
	}
	fmt.Fprintf(b, " (%d cells)\n", len(s.cells))

	if p, ok := s.FrozenPane(); ok {
		fmt.Fprintf(b, "  Frozen: %d row(s), %d column(s) at %s\n", p.Rows, p.Columns, p.TopLeftCell().Ref())
	}

	if len(s.columns) > 0 {
		b.WriteString("  Columns:\n")
		for _, col := range sortedKeys(s.columns) {
			fmt.Fprintf(b, "    %s %s\n", ColumnLetters(col), s.columns[col])
		}
	}
	if len(s.rows) > 0 {
		b.WriteString("  Rows:\n")
		for _, row := range sortedKeys(s.rows) {
			fmt.Fprintf(b, "    %d %s\n", row+1, s.rows[row])
		}
	}

	if len(s.merges) > 0 {
		b.WriteString("  Merged:\n")
		for _, m := range s.merges {
			fmt.Fprintf(b, "    %s\n", m)
		}
	}

	if vs := s.Validations(); len(vs) > 0 {
		b.WriteString("  Validations:\n")
		for _, v := range vs {
			fmt.Fprintf(b, "    %s %s %s%s\n", v.Range, v.Rule.Type, v.Rule.Formula1, describeRuleAttrs(v.Rule))
		}
	}

	var links, formulas []string
	for _, pos := range s.Positions() {
		c := s.cells[pos]
		if c.Hyperlink != nil {
			links = append(links, fmt.Sprintf("    %s -> %s", pos, c.Hyperlink.URL))
		}
		if c.Value.IsFormula() {
			line := fmt.Sprintf("    %s: %s", pos, c.Value.AsString())
			if refs := FormulaReferences(c.Value.AsString()); len(refs) > 0 {
				parts := make([]string, len(refs))
				for i, r := range refs {
					parts[i] = r.String()
				}
				line += " refs " + strings.Join(parts, ", ")
			}
			formulas = append(formulas, line)
		}
	}
	if len(links) > 0 {
		b.WriteString("  Hyperlinks:\n")
		for _, l := range links {
			b.WriteString(l)
			b.WriteByte('\n')
		}
	}
	if len(formulas) > 0 {
		b.WriteString("  Formulas:\n")
		for _, f := range formulas {
			b.WriteString(f)
			b.WriteByte('\n')
		}
	}
}

// describeRuleAttrs returns the non-default attributes of a rule for display.
func describeRuleAttrs(r ValidationRule) string {
	var parts []string
	if r.Type != ValidateList && r.Type != ValidateCustom {
		parts = append(parts, fmt.Sprintf("operator=%s", r.Operator))
		if r.Formula2 != "" {
			parts = append(parts, fmt.Sprintf("formula2=%q", r.Formula2))
		}
	}
	if r.AllowBlank {
		parts = append(parts, "allowBlank")
	}
	if r.ShowInputMessage {
		parts = append(parts, fmt.Sprintf("prompt=%q", r.InputMessage))
	}
	if r.ShowErrorMessage {
		parts = append(parts, fmt.Sprintf("error=%s:%q", r.ErrorStyle, r.ErrorMessage))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

func sortedKeys(m map[int]Dimension) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
