// Package config loads gopicker settings from viper into typed structs.
package config

import (
	"fmt"
	"time"

	"github.com/jonesrussell/gopicker/internal/browser"
	"github.com/jonesrussell/gopicker/internal/dom"
	"github.com/jonesrussell/gopicker/internal/fetcher"
	"github.com/jonesrussell/gopicker/internal/logger"
	"github.com/jonesrussell/gopicker/internal/pagination"
	"github.com/jonesrussell/gopicker/internal/pattern"
	"github.com/jonesrussell/gopicker/internal/picker"
	"github.com/jonesrussell/gopicker/internal/selector"
	"github.com/spf13/viper"
)

// Escape modes for picker.escape.
const (
	EscapeCSSOM  = "cssom"
	EscapeSimple = "simple"
)

// Config is the full application configuration.
type Config struct {
	Picker  PickerConfig   `mapstructure:"picker" yaml:"picker"`
	Browser browser.Config `mapstructure:"browser" yaml:"browser"`
	Fetcher fetcher.Config `mapstructure:"fetcher" yaml:"fetcher"`
}

// PickerConfig tunes selector inference and the session.
type PickerConfig struct {
	CancelKey        string            `mapstructure:"cancel_key" yaml:"cancel_key"`
	Step2Cancel      string            `mapstructure:"step2_cancel" yaml:"step2_cancel"`
	MaxAncestorDepth int               `mapstructure:"max_ancestor_depth" yaml:"max_ancestor_depth"`
	RowMinMatches    int               `mapstructure:"row_min_matches" yaml:"row_min_matches"`
	RowMaxMatches    int               `mapstructure:"row_max_matches" yaml:"row_max_matches"`
	StableClass      StableClassConfig `mapstructure:"stable_class" yaml:"stable_class"`
	Escape           string            `mapstructure:"escape" yaml:"escape"`
	Sections         []string          `mapstructure:"sections" yaml:"sections"`
	DefaultSection   string            `mapstructure:"default_section" yaml:"default_section"`
	Highlight        HighlightConfig   `mapstructure:"highlight" yaml:"highlight"`
	Clipboard        bool              `mapstructure:"clipboard" yaml:"clipboard"`
}

// StableClassConfig holds the class stability thresholds.
type StableClassConfig struct {
	MaxLength   int `mapstructure:"max_length" yaml:"max_length"`
	MaxDigitRun int `mapstructure:"max_digit_run" yaml:"max_digit_run"`
	MaxClasses  int `mapstructure:"max_classes" yaml:"max_classes"`
}

// HighlightConfig controls the flash outline on the picked element.
type HighlightConfig struct {
	Style    string        `mapstructure:"style" yaml:"style"`
	Duration time.Duration `mapstructure:"duration" yaml:"duration"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("picker", map[string]any{
		"cancel_key":         picker.DefaultCancelKey,
		"step2_cancel":       string(picker.Step2Skip),
		"max_ancestor_depth": selector.DefaultMaxDepth,
		"row_min_matches":    selector.DefaultMinMatches,
		"row_max_matches":    selector.DefaultMaxMatches,
		"stable_class": map[string]any{
			"max_length":    selector.DefaultMaxClassLength,
			"max_digit_run": selector.DefaultMaxDigitRun,
			"max_classes":   selector.DefaultMaxClasses,
		},
		"escape":          EscapeCSSOM,
		"sections":        pagination.DefaultSections,
		"default_section": pagination.DefaultSection,
		"highlight": map[string]any{
			"style":    picker.DefaultHighlightStyle,
			"duration": picker.DefaultHighlightDuration.String(),
		},
		"clipboard": true,
	})

	v.SetDefault("browser", map[string]any{
		"headless":      false,
		"exec_path":     "",
		"window_width":  browser.DefaultWindowWidth,
		"window_height": browser.DefaultWindowHeight,
		"timeout":       browser.DefaultTimeout.String(),
		"args":          []string{},
	})

	v.SetDefault("fetcher", map[string]any{
		"user_agent":      fetcher.DefaultUserAgent,
		"request_timeout": fetcher.DefaultRequestTimeout.String(),
	})
}

// LoadConfig unmarshals and validates the global viper instance.
func LoadConfig() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom unmarshals and validates v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if err := c.Picker.Validate(); err != nil {
		return fmt.Errorf("picker: %w", err)
	}
	if c.Browser.WindowWidth < 0 || c.Browser.WindowHeight < 0 {
		return fmt.Errorf("browser: %w", ErrInvalidWindowSize)
	}
	return nil
}

// Validate checks the picker settings.
func (p *PickerConfig) Validate() error {
	switch picker.Step2Cancel(p.Step2Cancel) {
	case picker.Step2Skip, picker.Step2Abort:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStep2Cancel, p.Step2Cancel)
	}
	switch p.Escape {
	case EscapeCSSOM, EscapeSimple:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEscape, p.Escape)
	}
	if p.CancelKey == "" {
		return ErrInvalidCancelKey
	}
	if p.MaxAncestorDepth <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, p.MaxAncestorDepth)
	}
	if p.RowMinMatches < 1 || p.RowMaxMatches < p.RowMinMatches {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidRowRange, p.RowMinMatches, p.RowMaxMatches)
	}
	sc := p.StableClass
	if sc.MaxLength <= 0 || sc.MaxDigitRun <= 0 || sc.MaxClasses <= 0 {
		return ErrInvalidClassPolicy
	}
	return nil
}

// Builder returns the selector builder described by the settings.
func (p *PickerConfig) Builder() *selector.Builder {
	escaper := dom.EscapeIdent
	if p.Escape == EscapeSimple {
		escaper = dom.EscapeSimple
	}
	return selector.NewBuilder(
		selector.WithClassPolicy(selector.ClassPolicy{
			MaxLength:   p.StableClass.MaxLength,
			MaxDigitRun: p.StableClass.MaxDigitRun,
			MaxClasses:  p.StableClass.MaxClasses,
		}),
		selector.WithEscaper(escaper),
	)
}

// SessionOptions wires the inference components into picker options.
func (p *PickerConfig) SessionOptions(log logger.Interface) []picker.Option {
	builder := p.Builder()
	return []picker.Option{
		picker.WithLogger(log),
		picker.WithBuilder(builder),
		picker.WithRowFinder(selector.NewRowFinder(builder,
			selector.WithMaxDepth(p.MaxAncestorDepth),
			selector.WithMatchRange(p.RowMinMatches, p.RowMaxMatches),
		)),
		picker.WithClassifier(pagination.NewDefaultClassifier(builder, nil)),
		picker.WithSectionDetector(pagination.NewSectionDetector(p.Sections, p.DefaultSection)),
		picker.WithRecognizers(pattern.DefaultRowRecognizers(), pattern.DefaultItemRecognizers()),
		picker.WithCancelKey(p.CancelKey),
		picker.WithStep2Cancel(picker.Step2Cancel(p.Step2Cancel)),
		picker.WithHighlight(p.Highlight.Style, p.Highlight.Duration),
	}
}
