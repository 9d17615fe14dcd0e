package xlsheet

import (
	"fmt"
	"strings"
)

// Severity indicates how serious a check issue is.
type Severity int

const (
	SeverityError   Severity = iota // Writing fails or the file is broken
	SeverityWarning                 // The file opens but differs from the model
)

// Issue is a single problem found by Check.
type Issue struct {
	Severity Severity
	Sheet    string
	Ref      string // cell or range; empty for sheet-level issues
	Message  string
}

// String formats the issue as "[ERROR] Sheet1!A2: message" or "[WARN] ...".
func (i Issue) String() string {
	sev := "ERROR"
	if i.Severity == SeverityWarning {
		sev = "WARN"
	}
	where := i.Sheet
	if i.Ref != "" {
		where = quoteSheetName(i.Sheet) + "!" + i.Ref
	}
	return fmt.Sprintf("[%s] %s: %s", sev, where, i.Message)
}

// MaxSheetNameLength is the longest sheet name a package accepts.
const MaxSheetNameLength = 31

// Check inspects a workbook without writing it and returns the issues found:
// sheet names the package rejects, formulas and links that point at missing
// sheets or names, content hidden under merges, and settings that are not
// persisted.
func Check(wb *Workbook) []Issue {
	var issues []Issue
	issues = append(issues, checkSheetNameIssues(wb)...)
	for _, s := range wb.sheets {
		issues = append(issues, checkFormulas(wb, s)...)
		issues = append(issues, checkLinks(wb, s)...)
		issues = append(issues, checkMerges(s)...)
		issues = append(issues, checkSizes(s)...)
	}
	return issues
}

// HasErrors reports whether any issue is error-level.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

func checkSheetNameIssues(wb *Workbook) []Issue {
	var issues []Issue
	if len(wb.sheets) == 0 {
		return []Issue{{Severity: SeverityError, Message: ErrNoSheets.Error()}}
	}
	seen := make(map[string]bool, len(wb.sheets))
	for _, s := range wb.sheets {
		name := s.name
		switch {
		case name == "":
			issues = append(issues, Issue{Severity: SeverityError, Message: "sheet name is empty"})
		case len([]rune(name)) > MaxSheetNameLength:
			issues = append(issues, Issue{Severity: SeverityError, Sheet: name,
				Message: fmt.Sprintf("sheet name longer than %d characters", MaxSheetNameLength)})
		case strings.ContainsAny(name, `[]:*?/\`):
			issues = append(issues, Issue{Severity: SeverityError, Sheet: name,
				Message: `sheet name contains one of []:*?/\`})
		case strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'"):
			issues = append(issues, Issue{Severity: SeverityError, Sheet: name,
				Message: "sheet name starts or ends with an apostrophe"})
		}
		key := strings.ToLower(name)
		if seen[key] {
			issues = append(issues, Issue{Severity: SeverityError, Sheet: name, Message: ErrDuplicateSheet.Error()})
		}
		seen[key] = true
	}
	return issues
}

func hasSheet(wb *Workbook, name string) bool {
	for _, s := range wb.sheets {
		if strings.EqualFold(s.name, name) {
			return true
		}
	}
	return false
}

// checkFormulas reports references to sheets and names the workbook lacks.
func checkFormulas(wb *Workbook, s *Sheet) []Issue {
	var issues []Issue
	for _, pos := range s.FormulaCells() {
		f := s.cells[pos].Value.AsString()
		for _, ref := range FormulaReferences(f) {
			if ref.Sheet != "" && !hasSheet(wb, ref.Sheet) {
				issues = append(issues, Issue{Severity: SeverityError, Sheet: s.name, Ref: pos.Ref(),
					Message: fmt.Sprintf("formula refers to unknown sheet %q", ref.Sheet)})
			}
		}
		for _, name := range FormulaNames(f) {
			if _, ok := wb.NamedRange(name); !ok {
				issues = append(issues, Issue{Severity: SeverityWarning, Sheet: s.name, Ref: pos.Ref(),
					Message: fmt.Sprintf("formula uses undefined name %q", name)})
			}
		}
	}
	return issues
}

// checkLinks validates in-document links ("#Sheet!A1").
func checkLinks(wb *Workbook, s *Sheet) []Issue {
	var issues []Issue
	for _, pos := range s.Positions() {
		link := s.cells[pos].Hyperlink
		if link == nil {
			continue
		}
		loc, ok := strings.CutPrefix(link.URL, "#")
		if !ok {
			continue
		}
		target, _, err := parseRefersTo(loc)
		if err != nil {
			issues = append(issues, Issue{Severity: SeverityError, Sheet: s.name, Ref: pos.Ref(),
				Message: fmt.Sprintf("invalid link location %q", loc)})
			continue
		}
		if !hasSheet(wb, target) {
			issues = append(issues, Issue{Severity: SeverityError, Sheet: s.name, Ref: pos.Ref(),
				Message: fmt.Sprintf("link points at unknown sheet %q", target)})
		}
	}
	return issues
}

// checkMerges reports non-anchor cells whose content a merge hides.
func checkMerges(s *Sheet) []Issue {
	var issues []Issue
	positions := s.Positions()
	for _, m := range s.merges {
		for _, pos := range positions {
			if pos == m.Min || !m.Contains(pos) || s.cells[pos].Value.IsEmpty() {
				continue
			}
			issues = append(issues, Issue{Severity: SeverityWarning, Sheet: s.name, Ref: pos.Ref(),
				Message: fmt.Sprintf("content hidden by merge %s", m)})
		}
	}
	return issues
}

// checkSizes reports auto-expand columns, which are written at the default
// width.
func checkSizes(s *Sheet) []Issue {
	var issues []Issue
	for _, col := range sortedKeys(s.columns) {
		if s.columns[col].IsAutoExpand() {
			issues = append(issues, Issue{Severity: SeverityWarning, Sheet: s.name, Ref: ColumnLetters(col),
				Message: "auto-expand column width is not persisted"})
		}
	}
	return issues
}
