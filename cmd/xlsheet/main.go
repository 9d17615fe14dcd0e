// Command xlsheet inspects and generates styled xlsx workbooks.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/javajack/xlsheet"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the state shared by all subcommands.
type app struct {
	configPath string
	verbose    bool

	cfg    *xlsheet.Config
	logger *logrus.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "xlsheet",
		Short: "Inspect and generate styled xlsx workbooks",
		Long: `Read, describe and generate .xlsx workbooks.

Commands:
  describe  Print the structure of a workbook.
  cells     List the cells of a sheet, optionally filtered by an expression.
  styles    Print the deduplicated style table of a workbook.
  check     Report broken references and lossy settings.
  demo      Write a sample workbook that uses every feature.

Examples:
  xlsheet describe report.xlsx
  xlsheet cells report.xlsx --sheet Report --where 'bold && row == 2'
  xlsheet --config xlsheet.yaml demo sample.xlsx`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(a.newDescribeCommand())
	cmd.AddCommand(a.newCellsCommand())
	cmd.AddCommand(a.newStylesCommand())
	cmd.AddCommand(a.newCheckCommand())
	cmd.AddCommand(a.newDemoCommand())
	return cmd
}

func (a *app) init(stderr io.Writer) error {
	if a.configPath != "" {
		cfg, err := xlsheet.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	logger, err := a.cfg.Logger(stderr)
	if err != nil {
		return err
	}
	if a.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	a.logger = logger
	return nil
}

func (a *app) options() []xlsheet.Option {
	return append(a.cfg.Options(), xlsheet.WithLogger(a.logger))
}

func (a *app) open(path string) (*xlsheet.Workbook, error) {
	wb, err := xlsheet.Open(path, a.options()...)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return wb, nil
}
