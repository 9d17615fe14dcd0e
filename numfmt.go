package xlsheet

import (
	"regexp"
	"slices"
	"strings"
)

// Built-in number format codes.
const (
	FormatISODateTime   = "yyyy-mm-dd hh:mm:ss"
	FormatISODate       = "yyyy-mm-dd"
	FormatLocalDateTime = "dd/mm/yyyy hh:mm:ss"
	FormatLocalDate     = "dd/mm/yyyy"
	FormatTime          = "hh:mm:ss"
	FormatInteger       = "0"
	FormatFloat2        = "0.00"
	FormatFloat3        = "0.000"
	FormatFloat4        = "0.0000"
)

// FirstCustomFormatID is the first id handed out to custom format codes.
const FirstCustomFormatID = 171

// firstDeclaredFormatID is the lowest id a package declares a code for;
// lower ids are the spreadsheet's own built-ins.
const firstDeclaredFormatID = 164

// builtinFormats have fixed ids. 1 and 2 are the spreadsheet's own
// built-ins; the rest occupy the first declared slots.
var builtinFormats = map[string]int{
	FormatInteger:       1,
	FormatFloat2:        2,
	FormatISODateTime:   164,
	FormatISODate:       165,
	FormatLocalDateTime: 166,
	FormatLocalDate:     167,
	FormatFloat3:        168,
	FormatFloat4:        169,
	FormatTime:          170,
}

// toolkitBuiltinCodes resolves the spreadsheet built-in ids a package may
// reference without declaring a code.
var toolkitBuiltinCodes = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: "#,##0 ;(#,##0)",
	38: "#,##0 ;[Red](#,##0)",
	39: "#,##0.00;(#,##0.00)",
	40: "#,##0.00;[Red](#,##0.00)",
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mmss.0",
	48: "##0.0E+0",
	49: "@",
}

// NumberFormat is one entry of the number-format table.
type NumberFormat struct {
	ID   int
	Code string
}

// NumberFormats is a registry of format codes keyed by code string.
// Built-ins are always present; custom codes get ids from FirstCustomFormatID.
type NumberFormats struct {
	ids    map[string]int
	custom []NumberFormat
	next   int
	maxID  int // highest id registered so far
}

// NewNumberFormats returns a registry seeded with the built-in formats.
func NewNumberFormats() *NumberFormats {
	ids := make(map[string]int, len(builtinFormats))
	for code, id := range builtinFormats {
		ids[code] = id
	}
	return &NumberFormats{ids: ids, next: FirstCustomFormatID}
}

// Register returns the id for code, adding it if it is new. The empty code
// is the General format, id 0.
func (n *NumberFormats) Register(code string) int {
	if code == "" {
		return 0
	}
	id, ok := n.ids[code]
	if !ok {
		id = n.next
		n.next++
		n.ids[code] = id
		n.custom = append(n.custom, NumberFormat{ID: id, Code: code})
	}
	n.maxID = max(n.maxID, id)
	return id
}

// ID returns the id of a registered code.
func (n *NumberFormats) ID(code string) (int, bool) {
	if code == "" {
		return 0, true
	}
	id, ok := n.ids[code]
	return id, ok
}

// Custom returns the formats added beyond the built-ins, in id order.
func (n *NumberFormats) Custom() []NumberFormat { return slices.Clone(n.custom) }

// All returns built-ins and custom formats ordered by id.
func (n *NumberFormats) All() []NumberFormat {
	out := make([]NumberFormat, 0, len(n.ids))
	for code, id := range n.ids {
		out = append(out, NumberFormat{ID: id, Code: code})
	}
	slices.SortFunc(out, func(a, b NumberFormat) int { return a.ID - b.ID })
	return out
}

// Declared returns the formats a package must declare so that every
// registered id keeps its number: all codes from 164 up to the highest
// registered id, in id order. Unused fixed slots below that id are
// included to keep the numbering contiguous.
func (n *NumberFormats) Declared() []NumberFormat {
	var out []NumberFormat
	for _, nf := range n.All() {
		if nf.ID >= firstDeclaredFormatID && nf.ID <= n.maxID {
			out = append(out, nf)
		}
	}
	return out
}

// isBuiltinFormatID reports whether id is one of the spreadsheet's own
// format ids, which packages reference without declaring a code.
func isBuiltinFormatID(id int) bool {
	return id > 0 && id < firstDeclaredFormatID
}

var (
	bracketed     = regexp.MustCompile(`\[[^\]]*\]`)
	dateFormatRun = map[rune]bool{'y': true, 'm': true, 'd': true, 'h': true, 's': true}
	numFormatRun  = map[rune]bool{'0': true, '#': true, '?': true}
)

// IsDateFormat reports whether a format code renders numbers as dates or
// times. Quoted text, escaped characters and bracketed sections are ignored;
// the code is a date format when it uses y/m/d/h/s and no digit
// placeholders.
func IsDateFormat(code string) bool {
	var b strings.Builder
	quoted, escaped := false, false
	for _, c := range code {
		switch {
		case escaped:
			escaped = false
		case quoted:
			if c == '"' {
				quoted = false
			}
		case c == '"':
			quoted = true
		case c == '\\' || c == '_' || c == '*':
			escaped = true
		default:
			b.WriteRune(c)
		}
	}
	reduced := bracketed.ReplaceAllString(b.String(), "")
	if strings.EqualFold(reduced, "general") || reduced == "@" {
		return false
	}
	dates, nums := 0, 0
	for _, c := range strings.ToLower(reduced) {
		switch {
		case dateFormatRun[c]:
			dates++
		case numFormatRun[c]:
			nums++
		}
	}
	return dates > 0 && nums == 0
}
