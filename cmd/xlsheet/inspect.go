package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/javajack/xlsheet"
	"github.com/spf13/cobra"
)

func (a *app) newDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe FILE",
		Short: "Print the structure of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := a.open(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), xlsheet.Describe(wb))
			return nil
		},
	}
}

func (a *app) newCellsCommand() *cobra.Command {
	var sheetName, where string
	cmd := &cobra.Command{
		Use:   "cells FILE",
		Short: "List the cells of a sheet",
		Long: `List the cells of a sheet in row-major order.

--where takes an expression evaluated per cell with the variables
ref, row, column, kind, value, text, empty, bold, italic, fill, format,
link and merged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := a.open(args[0])
			if err != nil {
				return err
			}
			sheet, err := pickSheet(wb, sheetName)
			if err != nil {
				return err
			}
			positions, err := sheet.Select(where)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "REF\tKIND\tVALUE\tFORMAT")
			for _, pos := range positions {
				c, _ := sheet.Cell(pos)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", pos, c.Value.Kind(), c.Value.AsString(), c.Style.NumberFormat)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet name (default: first sheet)")
	cmd.Flags().StringVar(&where, "where", "", "Filter expression")
	return cmd
}

func (a *app) newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Report broken references and lossy settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := a.open(args[0])
			if err != nil {
				return err
			}
			issues := xlsheet.Check(wb)
			for _, issue := range issues {
				fmt.Fprintln(cmd.OutOrStdout(), issue)
			}
			if xlsheet.HasErrors(issues) {
				return errCheckFailed
			}
			if len(issues) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No issues found")
			}
			return nil
		},
	}
}

var errCheckFailed = errors.New("check found errors")

func pickSheet(wb *xlsheet.Workbook, name string) (*xlsheet.Sheet, error) {
	if name == "" {
		return wb.Sheet(0)
	}
	return wb.SheetByName(name)
}

func (a *app) newStylesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "styles FILE",
		Short: "Print the deduplicated style table of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := a.open(args[0])
			if err != nil {
				return err
			}
			table := xlsheet.BuildStyleTable(wb)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%d style(s), %d font(s), %d fill(s), %d border(s)\n",
				table.Len(), len(table.Fonts()), len(table.Fills()), len(table.Borders()))
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tFONT\tFILL\tBORDER\tNUMFMT\tSTYLE")
			for i, e := range table.Entries() {
				fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%s\n", i, e.FontID, e.FillID, e.BorderID, e.NumFmtID, e.Definition.Style())
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			for _, nf := range table.NumberFormats().Declared() {
				fmt.Fprintf(out, "numFmt %d: %s\n", nf.ID, nf.Code)
			}
			return nil
		},
	}
}
