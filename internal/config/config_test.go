package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/jonesrussell/gopicker/internal/config"
	"github.com/jonesrussell/gopicker/internal/logger"
	"github.com/jonesrussell/gopicker/internal/picker"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T, yamlConfig string) *viper.Viper {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	if yamlConfig != "" {
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(strings.NewReader(yamlConfig)))
	}
	return v
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom(newViper(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "Escape", cfg.Picker.CancelKey)
	assert.Equal(t, "skip", cfg.Picker.Step2Cancel)
	assert.Equal(t, 16, cfg.Picker.MaxAncestorDepth)
	assert.Equal(t, 2, cfg.Picker.RowMinMatches)
	assert.Equal(t, 5000, cfg.Picker.RowMaxMatches)
	assert.Equal(t, 40, cfg.Picker.StableClass.MaxLength)
	assert.Equal(t, 4, cfg.Picker.StableClass.MaxDigitRun)
	assert.Equal(t, 2, cfg.Picker.StableClass.MaxClasses)
	assert.Equal(t, []string{"Exhibitors", "Speakers", "Sponsors", "Sessions"}, cfg.Picker.Sections)
	assert.Equal(t, 600*time.Millisecond, cfg.Picker.Highlight.Duration)
	assert.Equal(t, "3px solid #22c55e", cfg.Picker.Highlight.Style)
	assert.True(t, cfg.Picker.Clipboard)
	assert.Equal(t, 30*time.Second, cfg.Fetcher.RequestTimeout)
	assert.False(t, cfg.Browser.Headless)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := config.LoadFrom(newViper(t, `
picker:
  step2_cancel: abort
  escape: simple
  stable_class:
    max_digit_run: 6
  highlight:
    duration: 1s
browser:
  headless: true
  exec_path: /usr/bin/chromium
`))
	require.NoError(t, err)

	assert.Equal(t, "abort", cfg.Picker.Step2Cancel)
	assert.Equal(t, 6, cfg.Picker.StableClass.MaxDigitRun)
	assert.Equal(t, 40, cfg.Picker.StableClass.MaxLength)
	assert.Equal(t, time.Second, cfg.Picker.Highlight.Duration)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, "/usr/bin/chromium", cfg.Browser.ExecPath)

	// The simple escaper backslashes the colon instead of using a code point.
	assert.Equal(t, `a\:b`, cfg.Picker.Builder().Escape("a:b"))
	assert.Equal(t, `\33 col`, cfg.Picker.Builder().Escape("3col"))
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{"step2 cancel", "picker:\n  step2_cancel: maybe\n", config.ErrInvalidStep2Cancel},
		{"escape", "picker:\n  escape: html\n", config.ErrInvalidEscape},
		{"row range", "picker:\n  row_min_matches: 10\n  row_max_matches: 5\n", config.ErrInvalidRowRange},
		{"row minimum", "picker:\n  row_min_matches: 0\n", config.ErrInvalidRowRange},
		{"depth", "picker:\n  max_ancestor_depth: 0\n", config.ErrInvalidDepth},
		{"class policy", "picker:\n  stable_class:\n    max_classes: 0\n", config.ErrInvalidClassPolicy},
		{"cancel key", "picker:\n  cancel_key: \"\"\n", config.ErrInvalidCancelKey},
		{"window", "browser:\n  window_width: -1\n", config.ErrInvalidWindowSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadFrom(newViper(t, tt.yaml))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSessionOptions(t *testing.T) {
	cfg, err := config.LoadFrom(newViper(t, ""))
	require.NoError(t, err)

	opts := cfg.Picker.SessionOptions(logger.NewNoOp())
	assert.NotEmpty(t, opts)

	session := picker.NewSession(nil, nil, append(opts, picker.WithRegistry(picker.NewRegistry()))...)
	assert.NotEmpty(t, session.ID())
	assert.Equal(t, picker.StepIdle, session.Step())
}
