package postscmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-posts/internal/archive"
	"github.com/goliatone/go-posts/internal/commands"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the command handlers produced by RegisterPostsCommands.
type HandlerSet struct {
	Validate *ValidateDirectoryHandler
	Archive  *ArchiveDirectoryHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	validateHandlerOpts []commands.HandlerOption[ValidateDirectoryCommand]
	archiveHandlerOpts  []commands.HandlerOption[ArchiveDirectoryCommand]
}

// WithValidateHandlerOptions forwards options to the ValidateDirectoryHandler constructor.
func WithValidateHandlerOptions(opts ...commands.HandlerOption[ValidateDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.validateHandlerOpts = append(cfg.validateHandlerOpts, opts...)
	}
}

// WithArchiveHandlerOptions forwards options to the ArchiveDirectoryHandler constructor.
func WithArchiveHandlerOptions(opts ...commands.HandlerOption[ArchiveDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.archiveHandlerOpts = append(cfg.archiveHandlerOpts, opts...)
	}
}

// RegisterPostsCommands builds the post command handlers and registers them with the
// provided registry. A HandlerSet containing the constructed handlers is returned so
// callers can wire additional integrations (dispatcher, cron) as needed.
func RegisterPostsCommands(reg CommandRegistry, corpus CorpusFactory, repo archive.PostRepository, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if corpus == nil {
		return nil, errors.New("posts command registration: corpus factory is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "posts")

	validateHandler := NewValidateDirectoryHandler(corpus, logger, gates, cfg.validateHandlerOpts...)

	var archiveHandler *ArchiveDirectoryHandler
	if repo != nil {
		archiveHandler = NewArchiveDirectoryHandler(corpus, repo, logger, gates, cfg.archiveHandlerOpts...)
	}

	if reg != nil {
		if err := reg.RegisterCommand(validateHandler); err != nil {
			return nil, err
		}
		if archiveHandler != nil {
			if err := reg.RegisterCommand(archiveHandler); err != nil {
				return nil, err
			}
		}
	}

	return &HandlerSet{
		Validate: validateHandler,
		Archive:  archiveHandler,
	}, nil
}

// RegisterArchiveCron wires the provided archive handler into a cron registrar using the
// supplied command configuration and message payload. The handler is executed with a
// background context.
func RegisterArchiveCron(reg CronRegistrar, handler *ArchiveDirectoryHandler, cfg command.HandlerConfig, msg ArchiveDirectoryCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
