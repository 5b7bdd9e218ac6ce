package cmd

import (
	"fmt"
	"os"

	"github.com/davebream/mcpmock/internal/config"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "mcpmock",
	Short: "Mock MCP server for client tests",
	Long: "mcpmock answers newline-delimited JSON-RPC on stdin/stdout with canned\n" +
		"MCP replies (initialize, tools/list, tools/call echo) so MCP clients can\n" +
		"be tested without a real server. Run without a subcommand it serves.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mcpmock:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $MCPMOCK_CONFIG_DIR/config.json)")
	addServeFlags(rootCmd)
}

// resolveConfigPath returns --config or the default config file location.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.ConfigFilePath()
}

// loadConfig loads the config file if there is one. An explicit --config
// must exist.
func loadConfig() (*config.Config, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(path)
}

// loadServeConfig is loadConfig for the serve path. Without --config, a
// default config that cannot be located or loaded is ignored and returned as
// skipped so the mock still serves; an explicit --config stays strict.
func loadServeConfig() (cfg *config.Config, skipped error, err error) {
	if configPath != "" {
		cfg, err = config.Load(configPath)
		return cfg, nil, err
	}
	cfg, err = loadConfig()
	if err != nil {
		return config.DefaultConfig(), err, nil
	}
	return cfg, nil, nil
}
