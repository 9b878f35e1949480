package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goBinkit/internal/config"
)

var (
	// Global flags
	configFile string
	debug      bool
	verbose    bool
	quiet      bool

	// cfg is loaded before any subcommand runs
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "binkit",
	Short: "binkit - binary format toolkit",
	Long: `binkit reads and writes binary data: it finds signatures in files,
decodes records described by a layout file, and packs length-prefixed,
optionally compressed frames.`,
	Version:           "0.1.0-dev",
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path (default: binkit.toml in the working directory)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable normally suppressed debug logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")
}

// initConfig reads in the config file and ENV variables, then sets the log level.
func initConfig(cmd *cobra.Command, args []string) error {
	paths := config.DefaultConfigPaths()
	if configFile != "" {
		paths = config.ConfigPaths{Main: configFile}
	}

	c, err := config.LoadConfig(paths)
	if err != nil {
		return err
	}
	cfg = c

	level, _ := cfg.LogLevel()
	switch {
	case debug:
		level = slog.LevelDebug
	case verbose && level > slog.LevelInfo:
		level = slog.LevelInfo
	case quiet:
		level = slog.LevelError
	}
	setLogLevel(level)

	if p := cfg.GetConfigPath(); p != "" {
		slog.Debug("Loaded configuration", "path", p)
	}
	return nil
}
