package common_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonesrussell/gopicker/cmd/common"
	"github.com/jonesrussell/gopicker/internal/config"
	"github.com/jonesrussell/gopicker/internal/dom"
	"github.com/jonesrussell/gopicker/internal/logger"
	"github.com/jonesrussell/gopicker/internal/picker"
	"github.com/jonesrussell/gopicker/internal/replay"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandDeps_Validate(t *testing.T) {
	require.ErrorIs(t, common.CommandDeps{}.Validate(), common.ErrLoggerRequired)
	require.ErrorIs(t, common.CommandDeps{Logger: logger.NewNoOp()}.Validate(), common.ErrConfigRequired)
	require.NoError(t, common.CommandDeps{Logger: logger.NewNoOp(), Config: &config.Config{}}.Validate())
}

func TestLoggerConfig(t *testing.T) {
	v := viper.New()
	v.Set("logger.level", "DEBUG")
	v.Set("logger.encoding", "json")
	v.Set("logger.output_paths", []string{"stderr"})
	v.Set("logger.file", "/tmp/gopicker.log")
	v.Set("logger.max_size", 5)

	cfg := common.LoggerConfig(v)
	assert.Equal(t, logger.DebugLevel, cfg.Level)
	assert.Equal(t, "json", cfg.Encoding)
	assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)
	assert.Equal(t, "/tmp/gopicker.log", cfg.File)
	assert.Equal(t, 5, cfg.MaxSize)

	assert.Equal(t, logger.InfoLevel, common.LoggerConfig(viper.New()).Level)
}

func TestPickFlags_Script(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "steps.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - click: li.card a\n"), 0o600))

	flags := common.PickFlags{ScriptFile: path, Clicks: []string{"a.load-more"}, Escape: true}
	assert.True(t, flags.Scripted())

	script, err := flags.Script()
	require.NoError(t, err)
	assert.Equal(t, replay.Script{
		replay.Click("li.card a"),
		replay.Click("a.load-more"),
		replay.Escape(),
	}, script)

	assert.False(t, (&common.PickFlags{}).Scripted())

	_, err = (&common.PickFlags{ScriptFile: filepath.Join(dir, "missing.yaml")}).Script()
	require.Error(t, err)

	_, err = (&common.PickFlags{Clicks: []string{"li.card a", "li["}}).Script()
	require.ErrorIs(t, err, dom.ErrInvalidSelector)
}

func TestPickFlags_Presenter(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out", "config.json")
	flags := common.PickFlags{OutputFile: out, NoClipboard: true}
	deps := common.CommandDeps{Logger: logger.NewNoOp(), Config: &config.Config{}}

	var buf bytes.Buffer
	presenter := flags.Presenter(deps, &buf, "https://expo.example.com/Exhibitors/List")

	cfg := picker.Configuration{RowSelector: "li.card", ItemSelector: "li.card a"}
	require.NoError(t, presenter.Present(context.Background(), cfg))

	assert.Contains(t, buf.String(), "Copy this JSON config:")
	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(written), `"rowSelector": "li.card"`)

	var report bytes.Buffer
	flags.Report(&report, "https://expo.example.com/Exhibitors/List", &cfg)
	assert.Contains(t, report.String(), "li.card a")
	assert.Contains(t, report.String(), out)

	report.Reset()
	flags.Report(&report, "", nil)
	assert.Empty(t, report.String())
}
