// go_blog turns a YouTube video and a GitHub repository into a technical blog post.
//
// Exposes three MCP tools over HTTP: blog_generate, blog_save, blog_history.
// See cmd/blogctl for the one-shot command-line client.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_blog/internal/archive"
	"github.com/anatolykoptev/go_blog/internal/blog"
	"github.com/anatolykoptev/go_blog/internal/blogserver"
	"github.com/anatolykoptev/go_blog/internal/engine"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8892")
)

func main() {
	c := initEngine()

	store := openArchive(c.ArchiveDSN)
	if store != nil {
		defer store.Close()
	}

	slog.Info("starting go_blog",
		slog.String("port", mcpPort),
		slog.String("model", c.LLMModel),
		slog.String("output_dir", c.OutputDir),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_blog",
		Version: version,
	}, nil)

	blogserver.RegisterTools(server, &blogserver.Service{
		Runner:    blog.NewFromConfig(),
		Archive:   store,
		OutputDir: c.OutputDir,
	})
	slog.Info("tools registered", slog.Int("count", 3))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_blog",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() engine.Config {
	c := engine.ConfigFromEnv()
	if err := engine.Setup(c, env.Str("WEBSHARE_API_KEY", "")); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	return *engine.Cfg
}

// openArchive returns nil when ARCHIVE_DSN is unset or the store cannot be opened.
func openArchive(dsn string) archive.Store {
	if dsn == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	store, err := archive.Open(ctx, dsn)
	if err != nil {
		slog.Warn("archive init failed, saving without archive", slog.Any("error", err))
		return nil
	}
	slog.Info("archive initialized")
	return store
}
