package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/yunisnasibov/e-ticaret-12/internal/shop"
)

const (
	serverName    = "e-ticaret"
	serverVersion = "1.0.0"
)

func newServer(app *shop.Shop) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)
	registerTools(s, &tools{shop: app})
	return s
}

// Serve starts the MCP stdio server with all tools registered.
func Serve(app *shop.Shop) error {
	return server.ServeStdio(newServer(app))
}
