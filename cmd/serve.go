package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	mcpserver "github.com/yunisnasibov/e-ticaret-12/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting e-ticaret MCP server on stdio...")

	if err := mcpserver.Serve(s); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
	return nil
}
