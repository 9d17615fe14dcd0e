package xlsheet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the YAML file form of the library options.
//
//	default_font:
//	  family: Arial
//	  size: 10
//	  color: 1F4E79
//	datetime_format: dd/mm/yyyy hh:mm:ss
//	date_format: dd/mm/yyyy
//	log_level: debug
type Config struct {
	DefaultFont    *FontConfig `yaml:"default_font,omitempty"`
	DateTimeFormat string      `yaml:"datetime_format,omitempty"`
	DateFormat     string      `yaml:"date_format,omitempty"`
	LogLevel       string      `yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
}

// FontConfig describes the default font.
type FontConfig struct {
	Family string  `yaml:"family,omitempty"`
	Size   float64 `yaml:"size,omitempty" validate:"gte=0,lte=409"`
	Color  string  `yaml:"color,omitempty" validate:"xlsxcolor"`
	Bold   bool    `yaml:"bold,omitempty"`
	Italic bool    `yaml:"italic,omitempty"`
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("xlsxcolor", func(fl validator.FieldLevel) bool {
		return IsValidColor(fl.Field().String())
	})
	return v
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %q: %w", path, err)
	}
	defer f.Close()
	return ReadConfig(f)
}

// ReadConfig parses and validates YAML from r.
func ReadConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates YAML config data.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config fields.
func (c *Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "xlsxcolor" {
			return invalid(fe.Namespace(), fe.Value(), ErrInvalidColor)
		}
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Font converts the font section, or returns the zero font.
func (c *Config) Font() CellFont {
	if c == nil || c.DefaultFont == nil {
		return CellFont{}
	}
	f := CellFont{
		Family: c.DefaultFont.Family,
		Size:   c.DefaultFont.Size,
		Color:  strings.ToUpper(c.DefaultFont.Color),
		Bold:   c.DefaultFont.Bold,
		Italic: c.DefaultFont.Italic,
	}
	def := DefaultFont()
	if f.Family == "" {
		f.Family = def.Family
	}
	if f.Size == 0 {
		f.Size = def.Size
	}
	return f
}

// Logger builds a logger at the configured level writing to out.
// An empty level keeps logrus' default (info).
func (c *Config) Logger(out io.Writer) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(out)
	if c == nil || c.LogLevel == "" {
		return l, nil
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	l.SetLevel(lvl)
	return l, nil
}

// Options converts the config into library options. A nil config yields
// no options.
func (c *Config) Options() []Option {
	if c == nil {
		return nil
	}
	var opts []Option
	if f := c.Font(); !f.IsZero() {
		opts = append(opts, WithDefaultFont(f))
	}
	if c.DateTimeFormat != "" {
		opts = append(opts, WithDateTimeFormat(c.DateTimeFormat))
	}
	if c.DateFormat != "" {
		opts = append(opts, WithDateFormat(c.DateFormat))
	}
	return opts
}
