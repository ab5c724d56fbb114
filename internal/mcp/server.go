// Package mcp exposes the analysis engine over the Model Context Protocol
// on stdio.
package mcp

// Implementation Plan:
// 1. Server struct with engine, cache store, and invalidation watcher
// 2. NewServer - opens the cache, builds the engine, registers the tool
// 3. Serve - starts MCP server on stdio with graceful shutdown
// 4. Graceful shutdown on SIGTERM/SIGINT
// 5. Clean error handling and logging

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/project-prism/internal/analyzer"
	"github.com/mvp-joe/project-prism/internal/analyzer/parsers"
	"github.com/mvp-joe/project-prism/internal/cache"
	"github.com/mvp-joe/project-prism/internal/config"
)

// Server manages the MCP server lifecycle: the analysis engine, the result
// cache, and a watcher that evicts cache entries for files changed while
// the server runs.
type Server struct {
	cfg     *config.Config
	engine  *analyzer.Engine
	store   cache.Store
	watcher *cache.Watcher
	mcp     *server.MCPServer
}

// NewServer creates an MCP server analyzing files under rootDir with the
// given configuration.
func NewServer(cfg *config.Config, rootDir string) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	store, err := cache.OpenStore(cfg.Cache.Enabled, cfg.Cache.Location, cfg.Cache.MemoryCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	engine := analyzer.New(cfg, parsers.NewRegistry(cfg), store)

	mcpServer := server.NewMCPServer(
		"prism-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	AddAnalyzeCodeTool(mcpServer, engine)

	var watcher *cache.Watcher
	if cfg.Cache.Enabled && rootDir != "" {
		watcher, err = cache.NewWatcher(store, rootDir)
		if err != nil {
			// The cache still validates by hash and mtime on every read, so
			// a missing watcher degrades freshness, not correctness.
			log.Printf("cache invalidation watcher unavailable: %v", err)
			watcher = nil
		}
	}

	return &Server{
		cfg:     cfg,
		engine:  engine,
		store:   store,
		watcher: watcher,
		mcp:     mcpServer,
	}, nil
}

// Serve starts the MCP server and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Start(ctx)
		defer s.watcher.Stop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases all resources.
func (s *Server) Close() error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
