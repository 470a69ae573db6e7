package cmd

import (
	"github.com/spf13/cobra"

	"github.com/drake/gridsource/config"
	"github.com/drake/gridsource/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "gridsource",
	Short: "Sectioned list views over scripted data sources",
	Long: `gridsource shows sectioned lists in the terminal. Sections are declared
in a Lua script (grid.section{...}) or a YAML manifest; rows can be
static, dynamic, placeholders, or paged in as they scroll into view.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	cfgFile  string
	logLevel string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/gridsource/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug/info/warn/error), overrides the config file")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	v, err := config.NewViper(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		v.Set("logging.level", logLevel)
	}
	cfg, err = config.Load(v)
	return err
}

// newLogger returns the file logger when logging is enabled. The terminal
// belongs to the UI, so nothing is logged to stderr.
func newLogger() (*logging.Logger, error) {
	dir := cfg.LogDir()
	if dir == "" {
		return logging.NopLogger(), nil
	}
	return logging.NewLogger(dir, cfg.Logging.Level)
}
