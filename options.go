package pptxscene

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPositionScaleFactor converts EMU to CSS pixels at 96 DPI.
const DefaultPositionScaleFactor = 96.0 / emuPerInch

// DefaultConcurrency is the number of slides converted in parallel.
const DefaultConcurrency = 4

// Options controls a conversion.
type Options struct {
	// PositionScaleFactor multiplies EMU lengths: positions, sizes and
	// shadow distances. Border widths are always in points.
	PositionScaleFactor float64 `yaml:"positionScaleFactor" json:"positionScaleFactor" validate:"gt=0"`
	// FontSizeScaleFactor multiplies resolved font sizes and letter spacing only.
	FontSizeScaleFactor float64 `yaml:"fontSizeScaleFactor" json:"fontSizeScaleFactor" validate:"gt=0"`
	// Concurrency bounds parallel slide conversion. 0 means unlimited.
	Concurrency int `yaml:"concurrency" json:"concurrency" validate:"min=0,max=256"`
	// EmbedMedia emits images, audio and embedded video as data: URIs.
	// When false the package part name is emitted instead.
	EmbedMedia bool `yaml:"embedMedia" json:"embedMedia"`
	// Strict aborts the whole conversion on the first fatal slide error.
	Strict bool `yaml:"strict" json:"strict"`

	Logger *slog.Logger `yaml:"-" json:"-"`
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		PositionScaleFactor: DefaultPositionScaleFactor,
		FontSizeScaleFactor: 1,
		Concurrency:         DefaultConcurrency,
		EmbedMedia:          true,
	}
}

// Option mutates Options.
type Option func(*Options)

// WithPositionScaleFactor overrides the EMU to pixel multiplier.
func WithPositionScaleFactor(f float64) Option {
	return func(o *Options) { o.PositionScaleFactor = f }
}

// WithFontSizeScaleFactor overrides the font size multiplier.
func WithFontSizeScaleFactor(f float64) Option {
	return func(o *Options) { o.FontSizeScaleFactor = f }
}

// WithConcurrency sets how many slides are converted in parallel.
func WithConcurrency(n int) Option {
	return func(o *Options) { o.Concurrency = n }
}

// WithEmbedMedia controls data: URI embedding of media.
func WithEmbedMedia(embed bool) Option {
	return func(o *Options) { o.EmbedMedia = embed }
}

// WithStrict makes any fatal slide error fail the whole conversion.
func WithStrict(strict bool) Option {
	return func(o *Options) { o.Strict = strict }
}

// WithLogger sets the structured logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithOptions replaces all options at once, keeping an already set logger
// when opts carries none.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		logger := o.Logger
		*o = opts
		if o.Logger == nil {
			o.Logger = logger
		}
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks option ranges.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid options: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("invalid options: %s", strings.Join(msgs, "; "))
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// LoadOptions reads a YAML options file on top of DefaultOptions.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse options %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
