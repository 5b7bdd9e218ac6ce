package cmd

import (
	"encoding/json"

	"github.com/davebream/mcpmock/internal/mock"
	"github.com/davebream/mcpmock/internal/protocol"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool catalog exactly as tools/list returns it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(&protocol.ListToolsResult{Tools: mock.DefaultCatalog().Tools()})
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
