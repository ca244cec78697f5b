package bootstrap

import (
	"fmt"
	"strings"

	posts "github.com/goliatone/go-posts"
	"github.com/goliatone/go-posts/internal/di"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Options captures configuration for posts CLI bootstraps.
type Options struct {
	ContentDir     string
	Pattern        string
	Recursive      bool
	SafeMode       bool
	ArchiveDSN     string
	Prune          bool
	Commands       bool
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the posts module and the services the CLIs drive.
type Module struct {
	Module  *posts.Module
	Service posts.DocumentService
	Store   posts.StoreService
	Logger  interfaces.Logger
}

// BuildModule constructs a posts module configured for CLI operations.
func BuildModule(opts Options) (*Module, error) {
	cfg := posts.DefaultConfig()
	cfg.Content.Dir = strings.TrimSpace(opts.ContentDir)
	if cfg.Content.Dir == "" {
		cfg.Content.Dir = "content"
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Content.Pattern = trimmed
	}
	cfg.Content.Recursive = opts.Recursive
	cfg.Parser.SafeMode = opts.SafeMode

	if dsn := strings.TrimSpace(opts.ArchiveDSN); dsn != "" {
		cfg.Features.Archive = true
		cfg.Archive.Enabled = true
		cfg.Archive.DSN = dsn
		cfg.Archive.Prune = opts.Prune
	}

	if opts.Commands {
		cfg.Features.Commands = true
		cfg.Commands.Enabled = true
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := posts.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise posts module: %w", err)
	}

	service := module.Documents()
	if service == nil {
		return nil, fmt.Errorf("document service not configured; ensure the module is enabled")
	}

	logger := logging.ModuleLogger(module.Container().LoggerProvider(), "posts.cli")

	return &Module{
		Module:  module,
		Service: service,
		Store:   module.Store(),
		Logger:  logger,
	}, nil
}

// SplitList parses a comma separated list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
