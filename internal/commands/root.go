// Package commands implements the rewind command line interface. Every
// subcommand drives the same engine the MCP server uses, and --json
// switches the output to the envelope the server emits.
package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/keshon/rewind/internal/config"
	"github.com/keshon/rewind/internal/logger"
	"github.com/keshon/rewind/internal/server"
	"github.com/keshon/rewind/internal/tracker"
)

var (
	cfgFile    string
	projectDir string
	jsonOut    bool

	registry = tracker.NewRegistry()
)

var rootCmd = &cobra.Command{
	Use:           "rewind",
	Short:         "Snapshot, diff and restore a project directory",
	Long:          "Rewind tracks a project directory against a fixed baseline snapshot,\nrecords changed files as numbered states and restores any of them.",
	Version:       config.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default rewind.yaml in the current directory)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", ".", "project directory to operate on")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print results as JSON")
}

func initConfig() {
	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rewind")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("REWIND")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			logger.Default.Warn("config: %v", err)
		}
	}

	if l, ok := logger.Default.(*logger.StdLogger); ok {
		l.SetDebug(config.DebugLogging())
	}
}

// engine resolves the tracker for the --dir flag.
func engine() (*tracker.Tracker, error) {
	return registry.Get(projectDir)
}

// emit prints a result, either as the JSON envelope or through the
// command-specific human renderer.
func emit(result any, root string, human func()) error {
	if jsonOut {
		text, err := server.Envelope(result, root)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	}
	human()
	return nil
}

// fail prints an engine error the way the MCP layer reports it and
// returns it so cobra exits nonzero.
func fail(err error) error {
	if jsonOut {
		text, envErr := server.Envelope(map[string]any{
			"status":  tracker.StatusError,
			"message": server.Humanize(err),
		}, projectDir)
		if envErr == nil {
			fmt.Println(text)
			return err
		}
	}
	fmt.Fprintln(os.Stderr, "Error:", server.Humanize(err))
	return err
}
