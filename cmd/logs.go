package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/davebream/mcpmock/internal/config"
	"github.com/spf13/cobra"
)

var logsFollow bool

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the diagnostic log file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.LogFile == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No log_file configured; diagnostics go to stderr when debug is on.")
			return nil
		}

		logFile := config.ResolveEnv(cfg.LogFile)
		if _, err := os.Stat(logFile); os.IsNotExist(err) {
			fmt.Fprintln(cmd.OutOrStdout(), "No log file found at", logFile)
			return nil
		}

		tailArgs := []string{"-n", "50", logFile}
		if logsFollow {
			tailArgs = []string{"-f", logFile}
		}
		tailCmd := exec.Command("tail", tailArgs...)
		tailCmd.Stdout = cmd.OutOrStdout()
		tailCmd.Stderr = cmd.ErrOrStderr()
		return tailCmd.Run()
	},
}

func init() {
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output")
	rootCmd.AddCommand(logsCmd)
}
