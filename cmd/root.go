// Package cmd implements the command-line interface for gopicker.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joho/godotenv"
	"github.com/jonesrussell/gopicker/cmd/pick"
	cmdreplay "github.com/jonesrussell/gopicker/cmd/replay"
	"github.com/jonesrussell/gopicker/internal/config"
	"github.com/jonesrussell/gopicker/internal/logger"
)

// version is set at build time with -ldflags "-X github.com/jonesrussell/gopicker/cmd.version=..."
var version = "dev"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// rootCmd represents the root command for the gopicker CLI.
	rootCmd = &cobra.Command{
		Use:   "gopicker",
		Short: "Point-and-click selector inference for listing pages",
		Long: `gopicker infers the row, item and pagination selectors of a listing page
from two clicks and hands the result to a scraper builder as JSON.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early to get debug flag before creating logger
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gopicker version %s\n", version)
		},
	})

	rootCmd.AddCommand(pick.Command())
	rootCmd.AddCommand(cmdreplay.Command())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Environment variables take precedence over defaults and the config file.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// The config file is optional.
	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if Debug {
			fmt.Fprintf(os.Stderr, "Warning: Config file not found: %v (using defaults and environment variables)\n", err)
		}
	}

	if err := bindCommandLineFlags(); err != nil {
		return err
	}

	if err := bindAppEnvVars(); err != nil {
		return err
	}

	setupDevelopmentLogging()

	return nil
}

// bindCommandLineFlags binds command-line flags to Viper.
func bindCommandLineFlags() error {
	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		return fmt.Errorf("failed to bind config flag: %w", err)
	}
	return nil
}

// bindAppEnvVars binds application, logger and picker environment variables to config keys.
func bindAppEnvVars() error {
	bindings := []struct {
		key  string
		envs []string
	}{
		{"app.environment", []string{"APP_ENV"}},
		{"app.debug", []string{"APP_DEBUG"}},
		{"logger.level", []string{"LOG_LEVEL"}},
		{"logger.encoding", []string{"LOG_FORMAT"}},
		{"logger.file", []string{"LOG_FILE"}},
		{"picker.step2_cancel", []string{"PICKER_STEP2_CANCEL"}},
		{"browser.exec_path", []string{"CHROME_PATH", "BROWSER_EXEC_PATH"}},
		{"browser.headless", []string{"BROWSER_HEADLESS"}},
	}
	for _, b := range bindings {
		args := append([]string{b.key}, b.envs...)
		if err := viper.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b.envs[0], err)
		}
	}
	return nil
}

// setupDevelopmentLogging configures development logging settings based on environment and debug flag.
func setupDevelopmentLogging() {
	debugFlag := Debug || viper.GetBool("app.debug")
	isDev := viper.GetString("app.environment") == "development"

	if debugFlag {
		viper.Set("logger.level", "debug")
	}

	// Development mode changes formatting only, never the level.
	if isDev {
		viper.Set("logger.development", true)
		viper.Set("logger.enable_color", true)
		viper.Set("logger.encoding", "console")
	}

	Debug = debugFlag
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":        "gopicker",
		"version":     version,
		"environment": "production",
		"debug":       false,
	})

	// Logs go to stderr so stdout carries only the configuration.
	viper.SetDefault("logger", map[string]any{
		"level":        string(logger.DefaultLevel),
		"development":  false,
		"encoding":     logger.DefaultEncoding,
		"output_paths": []string{"stderr"},
		"enable_color": false,
		"file":         "",
		"max_size":     logger.DefaultMaxSize,
		"max_backups":  logger.DefaultMaxBackups,
		"max_age":      logger.DefaultMaxAge,
		"compress":     true,
	})

	config.SetDefaults(viper.GetViper())
}
