// Package main is the entry point for the searchclient CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/surfedu/searchclient"
	"github.com/surfedu/searchclient/internal/config"
	logpkg "github.com/surfedu/searchclient/internal/logger"
)

var (
	appCfg config.Config
	logger *zap.Logger
)

// rootCmd is the base command for the searchclient CLI.
var rootCmd = &cobra.Command{
	Use:   "searchclient",
	Short: "Search the edusources, publinova and mbodata indices",
	Long: `searchclient runs searches against the platform indices with the same
configuration presets the platforms use, and manages the indices themselves.

Connection settings come from config/<env>.yaml (ENV, default local) or the
file given with --config. Results are printed as JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Annotations["offline"] == "true" {
			return nil
		}
		return loadConfig(cmd)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: config/<env>.yaml)")
	rootCmd.PersistentFlags().String("platform", "", "platform, overrides search.platform")
	rootCmd.PersistentFlags().StringSlice("preset", nil, "presets, overrides search.presets")
	rootCmd.PersistentFlags().String("alias-prefix", "", "alias prefix, overrides search.alias_prefix")
}

func loadConfig(cmd *cobra.Command) error {
	env := config.GetEnv()
	path, _ := cmd.Flags().GetString("config")

	var err error
	if path != "" {
		appCfg, err = config.LoadFile(path)
	} else {
		appCfg, err = config.Load(env)
	}
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("platform"); v != "" {
		appCfg.Search.Platform = v
	}
	if v, _ := cmd.Flags().GetStringSlice("preset"); len(v) > 0 {
		appCfg.Search.Presets = v
	}
	if v, _ := cmd.Flags().GetString("alias-prefix"); v != "" {
		appCfg.Search.AliasPrefix = v
	}

	logger, err = logpkg.NewFileLogger(env, logpkg.FileConfig{
		Path:       appCfg.Logging.File,
		MaxSizeMB:  appCfg.Logging.MaxSizeMB,
		MaxBackups: appCfg.Logging.MaxBackups,
		MaxAgeDays: appCfg.Logging.MaxAgeDays,
	}, appCfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	return nil
}

// newClient connects a client with the loaded configuration.
func newClient() (*searchclient.Client, error) {
	c, err := searchclient.NewFromConfig(appCfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("Connected",
		zap.String("platform", appCfg.Search.Platform),
		zap.Strings("aliases", c.Configuration().Aliases()),
	)
	return c, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
