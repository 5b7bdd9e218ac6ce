package cmd

import (
	"fmt"

	"github.com/davebream/mcpmock/internal/mock"
	"github.com/davebream/mcpmock/internal/protocol"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mcpmock %s (commit: %s, mcp: %s, reports: %s %s)\n",
			version, commit, protocol.MCPVersion, mock.ServerInfo.Name, mock.ServerInfo.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
