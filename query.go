package xlsheet

import (
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/shopspring/decimal"
)

// CellEnv is what a query expression sees for each cell.
//
//	kind == "Integer" && value > 40
//	bold && row == 1
//	text contains "total" || link != ""
type CellEnv struct {
	Ref    string `expr:"ref"`
	Row    int    `expr:"row"` // 1-based, as displayed
	Column string `expr:"column"`
	Kind   string `expr:"kind"`
	Value  any    `expr:"value"`
	Text   string `expr:"text"`
	Empty  bool   `expr:"empty"`
	Bold   bool   `expr:"bold"`
	Italic bool   `expr:"italic"`
	Fill   string `expr:"fill"`
	Format string `expr:"format"`
	Link   string `expr:"link"`
	Merged bool   `expr:"merged"`
}

// nativeValue exposes a value with plain Go types so expressions can
// compare it against literals.
type nativeValue struct{}

func (nativeValue) Text(s string) any { return s }
func (nativeValue) Decimal(d decimal.Decimal) any {
	f, _ := d.Float64()
	return f
}
func (nativeValue) Integer(n int64) any           { return n }
func (nativeValue) NaiveDateTime(t time.Time) any { return t }
func (nativeValue) ZonedDateTime(t time.Time) any { return t }
func (nativeValue) Formula(f string) any          { return f }

func (s *Sheet) cellEnv(pos CellPosition) CellEnv {
	c := s.cells[pos]
	env := CellEnv{
		Ref:    pos.Ref(),
		Row:    pos.Row + 1,
		Column: ColumnLetters(pos.Column),
		Kind:   c.Value.Kind().String(),
		Value:  Visit[any](c.Value, nativeValue{}),
		Text:   c.Value.AsString(),
		Empty:  c.Value.IsEmpty(),
		Bold:   c.Style.Font.Bold,
		Italic: c.Style.Font.Italic,
		Fill:   c.Style.FillColor,
		Format: c.Style.NumberFormat,
	}
	if c.Hyperlink != nil {
		env.Link = c.Hyperlink.URL
	}
	for _, m := range s.merges {
		if m.Contains(pos) {
			env.Merged = true
			break
		}
	}
	return env
}

// Query is a compiled cell filter.
type Query struct {
	source  string
	program *vm.Program
}

// CompileQuery compiles a boolean expression over CellEnv.
func CompileQuery(expression string) (*Query, error) {
	program, err := expr.Compile(expression, expr.Env(CellEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile query %q: %w", expression, err)
	}
	return &Query{source: expression, program: program}, nil
}

func (q *Query) String() string { return q.source }

// Match evaluates the query against one cell environment.
func (q *Query) Match(env CellEnv) (bool, error) {
	out, err := expr.Run(q.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate query %q at %s: %w", q.source, env.Ref, err)
	}
	b, _ := out.(bool)
	return b, nil
}

// Select returns the positions, in row-major order, of the cells for which
// expression is true. An empty expression selects every cell.
func (s *Sheet) Select(expression string) ([]CellPosition, error) {
	positions := s.Positions()
	if expression == "" {
		return positions, nil
	}
	q, err := CompileQuery(expression)
	if err != nil {
		return nil, err
	}
	var out []CellPosition
	for _, pos := range positions {
		ok, err := q.Match(s.cellEnv(pos))
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, pos)
		}
	}
	return out, nil
}
