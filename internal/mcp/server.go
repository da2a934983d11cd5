// Package mcp serves symbol extraction as an MCP tool over stdio.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/symextract/internal/logging"
)

// ServerName is the MCP implementation name announced to clients.
const ServerName = "symextract"

// Server manages the MCP server lifecycle.
type Server struct {
	mcp    *server.MCPServer
	logger *slog.Logger
}

// NewServer creates an MCP server exposing extract_symbols backed by scanner.
func NewServer(scanner SymbolScanner, version string, logger *slog.Logger) (*Server, error) {
	if scanner == nil {
		return nil, fmt.Errorf("symbol scanner is required")
	}
	if logger == nil {
		logger = logging.Nop()
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
	)

	AddExtractSymbolsTool(mcpServer, scanner, logger)

	return &Server{mcp: mcpServer, logger: logger}, nil
}

// MCPServer exposes the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Serve serves on stdio and blocks until the client disconnects, a signal
// arrives, or ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	stdio := server.NewStdioServer(s.mcp)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting MCP server on stdio")
		errCh <- stdio.Listen(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case <-sigCh:
		s.logger.Info("received shutdown signal, stopping")
		cancel()
		return nil
	case err := <-errCh:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
