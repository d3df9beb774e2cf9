package cli

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reposearch/internal/adapters/driving/mcp"
)

var (
	mcpPort int
	mcpHost string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol integration",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve repository search to MCP clients",
	Long: `Serve repository search to assistants over the Model Context Protocol.

Tools:
  search_repositories   one page of repositories plus the next page number

Resources:
  reposearch://settings          current settings, token omitted
  reposearch://search/{query}    first page of results for query

Without --port the server speaks JSON-RPC on stdin/stdout, which is what
assistant configurations expect:

  {"mcpServers": {"reposearch": {"command": "reposearch", "args": ["mcp", "serve"]}}}

With --port it serves the streamable HTTP transport instead, e.g. for
MCP Inspector:

  reposearch mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "interface to bind in HTTP mode")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(&mcp.Ports{
		Search:   searchService,
		Settings: settingsService,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	startConfigWatch(ctx)

	if mcpPort <= 0 {
		return server.Run(ctx)
	}

	addr := net.JoinHostPort(mcpHost, strconv.Itoa(mcpPort))
	fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", addr)
	return server.RunHTTP(ctx, addr)
}
