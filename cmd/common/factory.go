package common

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/gopicker/internal/config"
	"github.com/jonesrussell/gopicker/internal/logger"
	"github.com/spf13/viper"
)

// NewCommandDeps creates CommandDeps by loading config and creating logger.
func NewCommandDeps() (CommandDeps, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(LoggerConfig(viper.GetViper()))
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	deps := CommandDeps{
		Logger: log,
		Config: cfg,
	}

	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}

// LoggerConfig reads the logger settings from v.
func LoggerConfig(v *viper.Viper) *logger.Config {
	logLevel := v.GetString("logger.level")
	if logLevel == "" {
		logLevel = "info"
	}

	return &logger.Config{
		Level:       logger.Level(strings.ToLower(logLevel)),
		Development: v.GetBool("logger.development"),
		Encoding:    v.GetString("logger.encoding"),
		OutputPaths: v.GetStringSlice("logger.output_paths"),
		EnableColor: v.GetBool("logger.enable_color"),
		File:        v.GetString("logger.file"),
		MaxSize:     v.GetInt("logger.max_size"),
		MaxBackups:  v.GetInt("logger.max_backups"),
		MaxAge:      v.GetInt("logger.max_age"),
		Compress:    v.GetBool("logger.compress"),
	}
}
