package xlsheet

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Options holds configuration shared by Workbook, Writer and Reader.
type Options struct {
	logger         *logrus.Logger
	defaultFont    CellFont
	dateTimeFormat string
	dateFormat     string
}

func defaultOptions() *Options {
	return &Options{
		logger:         discardLogger(),
		defaultFont:    DefaultFont(),
		dateTimeFormat: FormatISODateTime,
		dateFormat:     FormatISODate,
	}
}

func newOptions(opts []Option) *Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Option configures a Workbook, Writer or Reader.
type Option func(*Options)

// WithLogger sets the logger used while writing and reading packages.
func WithLogger(l *logrus.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDefaultFont sets the font applied to cells that do not set one.
func WithDefaultFont(f CellFont) Option {
	return func(o *Options) {
		if !f.IsZero() {
			o.defaultFont = f.normalized()
		}
	}
}

// WithDateTimeFormat sets the number format given to date-time values that
// have no explicit format (default: "yyyy-mm-dd hh:mm:ss").
func WithDateTimeFormat(code string) Option {
	return func(o *Options) {
		if code != "" {
			o.dateTimeFormat = code
		}
	}
}

// WithDateFormat sets the number format given to midnight date values that
// have no explicit format (default: "yyyy-mm-dd").
func WithDateFormat(code string) Option {
	return func(o *Options) {
		if code != "" {
			o.dateFormat = code
		}
	}
}

// isDefaultDateFormat reports whether code is one assigned to date values
// that carry no explicit format.
func (o *Options) isDefaultDateFormat(code string) bool {
	return code == o.dateFormat || code == o.dateTimeFormat
}
