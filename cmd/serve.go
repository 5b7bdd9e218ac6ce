package cmd

import (
	"fmt"

	"github.com/davebream/mcpmock/internal/logging"
	"github.com/davebream/mcpmock/internal/mock"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	debug    bool
	logFile  string
	logLevel string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer MCP requests on stdin/stdout until stdin closes",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&serveFlags.debug, "debug", false, "Write diagnostics to stderr (or --log-file)")
	cmd.Flags().StringVar(&serveFlags.logFile, "log-file", "", "Write diagnostics to this file instead of stderr")
	cmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "Diagnostic level: debug, info, warn, error")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, skipped, err := loadServeConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = serveFlags.debug
	}
	if flags.Changed("log-file") {
		cfg.LogFile = serveFlags.logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = serveFlags.logLevel
	}

	opts, err := cfg.LoggingOptions()
	if err != nil {
		return err
	}
	opts.Stderr = cmd.ErrOrStderr()

	logger, cleanup, err := logging.Setup(opts)
	if err != nil {
		return err
	}
	defer cleanup()
	if skipped != nil {
		logger.Debug("default config ignored", "error", skipped)
	}

	srv := mock.NewServer(mock.DefaultCatalog(), logger)
	if _, err := srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func init() {
	addServeFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}
