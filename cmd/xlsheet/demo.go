package main

import (
	"fmt"
	"time"

	"github.com/javajack/xlsheet"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *app) newDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo OUT",
		Short: "Write a sample workbook that uses every feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := buildDemo(a.options()...)
			if err != nil {
				return err
			}
			if err := xlsheet.Save(wb, args[0], a.options()...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
			return nil
		},
	}
}

type employee struct {
	Name   string
	Joined time.Time
	Salary string
	Level  int64
	Home   string
}

var demoEmployees = []employee{
	{"Alice", time.Date(2019, 3, 4, 0, 0, 0, 0, time.UTC), "95000.50", 3, "https://example.com/alice"},
	{"Bob", time.Date(2021, 7, 19, 0, 0, 0, 0, time.UTC), "72000", 2, ""},
	{"Carol", time.Date(2015, 1, 12, 0, 0, 0, 0, time.UTC), "105000.25", 4, "https://example.com/carol"},
	{"David", time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC), "68000", 1, ""},
}

func buildDemo(opts ...xlsheet.Option) (*xlsheet.Workbook, error) {
	wb := xlsheet.NewWorkbook(opts...)
	report := wb.AddSheet("Report")

	header := func(b *xlsheet.CellBuilder) {
		b.Style().Bold(true).FontColor("FFFFFF").FillColor("1F4E79").
			BottomBorder(xlsheet.BorderMedium, "000000").Align(xlsheet.HAlignCenter, xlsheet.VAlignCenter)
	}

	if err := report.AddCell(xlsheet.Pos(0, 0), xlsheet.Text("Employee Report"), func(b *xlsheet.CellBuilder) {
		b.Style().FontSize(16).Bold(true).Align(xlsheet.HAlignCenter, xlsheet.VAlignUnset)
	}); err != nil {
		return nil, err
	}
	if err := report.MergeCells(xlsheet.RangeFromBounds(xlsheet.Pos(0, 0), xlsheet.Pos(5, 0))); err != nil {
		return nil, err
	}

	for col, title := range []string{"Name", "Joined", "Salary", "Level", "Bonus", "Generated"} {
		if err := report.AddCell(xlsheet.Pos(col, 1), xlsheet.Text(title), header); err != nil {
			return nil, err
		}
	}

	generated := time.Now().UTC().Truncate(time.Second)
	for i, e := range demoEmployees {
		row := i + 2
		salary, err := decimal.NewFromString(e.Salary)
		if err != nil {
			return nil, err
		}
		cells := []struct {
			col   int
			value xlsheet.CellValue
			edit  func(*xlsheet.CellBuilder)
		}{
			{0, xlsheet.Text(e.Name), func(b *xlsheet.CellBuilder) {
				if e.Home != "" {
					b.Link(e.Home, "Profile of "+e.Name)
				}
			}},
			{1, xlsheet.NaiveDateTime(e.Joined), nil},
			{2, xlsheet.Decimal(salary), func(b *xlsheet.CellBuilder) { b.Style().NumberFormat("#,##0.00") }},
			{3, xlsheet.Integer(e.Level), nil},
			{4, xlsheet.Formula(fmt.Sprintf("=C%d*D%d/100", row+1, row+1)), func(b *xlsheet.CellBuilder) {
				b.Style().NumberFormat(xlsheet.FormatFloat2)
			}},
			{5, xlsheet.NaiveDateTime(generated), nil},
		}
		for _, c := range cells {
			if err := report.AddCell(xlsheet.Pos(c.col, row), c.value, c.edit); err != nil {
				return nil, err
			}
		}
	}

	last := len(demoEmployees) + 1
	if err := report.FreezeRows(2); err != nil {
		return nil, err
	}
	for col, width := range []float64{18, 14, 14, 8, 12, 22} {
		if err := report.SetColumnWidth(col, xlsheet.Size(width)); err != nil {
			return nil, err
		}
	}
	if err := report.SetRowHeight(0, xlsheet.Size(30)); err != nil {
		return nil, err
	}

	levels := xlsheet.RangeFromBounds(xlsheet.Pos(3, 2), xlsheet.Pos(3, last))
	rule := xlsheet.ListValidation("1", "2", "3", "4").
		WithInputMessage("Level", "Pick a level from 1 to 4").
		WithErrorMessage(xlsheet.ErrorStyleStop, "Invalid level", "Level must be 1-4")
	if err := report.AddValidation(levels, rule); err != nil {
		return nil, err
	}
	salaries := xlsheet.RangeFromBounds(xlsheet.Pos(2, 2), xlsheet.Pos(2, last))
	if err := report.AddValidation(salaries, xlsheet.CompareValidation(xlsheet.ValidateDecimal, xlsheet.OpGreaterThan, "0", "")); err != nil {
		return nil, err
	}
	if err := wb.AddNamedRange("Salaries", report.Name(), salaries); err != nil {
		return nil, err
	}

	notes := wb.AddSheet("Notes")
	if err := notes.AddCell(xlsheet.Pos(0, 0), xlsheet.Text("Rotated"), func(b *xlsheet.CellBuilder) {
		b.Style().Rotation(45).Outline(xlsheet.BorderThin, "808080")
	}); err != nil {
		return nil, err
	}
	if err := notes.AddCell(xlsheet.Pos(1, 0), xlsheet.Text("Salaries are gross yearly amounts. Bonus is derived from the level."), func(b *xlsheet.CellBuilder) {
		b.Style().Wrap(true).Italic(true)
	}); err != nil {
		return nil, err
	}
	if err := notes.SetColumnWidth(1, xlsheet.Size(40)); err != nil {
		return nil, err
	}
	if err := notes.SetColumnWidth(2, xlsheet.Hidden); err != nil {
		return nil, err
	}
	if err := notes.AddCell(xlsheet.Pos(0, 2), xlsheet.ZonedDateTime(generated.In(time.FixedZone("CET", 3600)))); err != nil {
		return nil, err
	}
	return wb, nil
}
