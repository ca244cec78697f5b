package postscmd

import (
	"context"
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-posts/internal/archive"
	"github.com/goliatone/go-posts/internal/commands"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/internal/store"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

const (
	validateOperation = "store.validate_directory"
	archiveOperation  = "archive.sync_directory"
)

var (
	// ErrStoreFeatureDisabled is returned when the store feature flag is disabled at runtime.
	ErrStoreFeatureDisabled = errors.New("posts command: store feature disabled")
	// ErrArchiveFeatureDisabled is returned when the archive feature flag is disabled at runtime.
	ErrArchiveFeatureDisabled = errors.New("posts command: archive feature disabled")
	// ErrDocumentsRejected is returned by strict validation when the corpus has unparseable documents.
	ErrDocumentsRejected = errors.New("posts command: documents rejected")
)

var (
	_ command.Commander[ValidateDirectoryCommand] = (*ValidateDirectoryHandler)(nil)
	_ command.Commander[ArchiveDirectoryCommand]  = (*ArchiveDirectoryHandler)(nil)
)

// Corpus is the directory-backed document set the command handlers operate on.
// The store satisfies it.
type Corpus interface {
	Reload(ctx context.Context) error
	Report() []interfaces.DocumentError
	Len() int
	Published() []*interfaces.Document
}

// CorpusFactory builds a corpus over the requested directory so commands can
// target paths supplied at dispatch time.
type CorpusFactory func(cfg store.Config) (Corpus, error)

// ValidateDirectoryHandler checks a content directory via the shared command handler foundation.
type ValidateDirectoryHandler struct {
	inner *commands.Handler[ValidateDirectoryCommand]
}

// NewValidateDirectoryHandler creates a handler bound to the supplied corpus factory.
func NewValidateDirectoryHandler(corpus CorpusFactory, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ValidateDirectoryCommand]) *ValidateDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ValidateDirectoryCommand) error {
		if !gates.storeEnabled() {
			return ErrStoreFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		set, err := corpus(store.Config{
			Directory: msg.Directory,
			Pattern:   msg.Pattern,
			Recursive: msg.Recursive,
		})
		if err != nil {
			return err
		}
		if err := set.Reload(ctx); err != nil {
			return err
		}

		report := set.Report()
		logging.WithFields(baseLogger, map[string]any{
			"parsed_count":   set.Len(),
			"rejected_count": len(report),
			"strict":         msg.Strict,
		}).Info("posts.command.validate_directory.completed")

		if msg.Strict && len(report) > 0 {
			return fmt.Errorf("validate directory %q: %d documents rejected: %w", msg.Directory, len(report), ErrDocumentsRejected)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ValidateDirectoryCommand]{
		commands.WithLogger[ValidateDirectoryCommand](baseLogger),
		commands.WithOperation[ValidateDirectoryCommand](validateOperation),
		commands.WithMessageFields(func(msg ValidateDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Recursive {
				fields["recursive"] = true
			}
			if msg.Strict {
				fields["strict"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ValidateDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ValidateDirectoryCommand].
func (h *ValidateDirectoryHandler) Execute(ctx context.Context, msg ValidateDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ArchiveDirectoryHandler mirrors a content directory into the archive via the shared
// command handler foundation.
type ArchiveDirectoryHandler struct {
	inner *commands.Handler[ArchiveDirectoryCommand]
}

// NewArchiveDirectoryHandler creates a handler bound to the supplied corpus factory and repository.
func NewArchiveDirectoryHandler(corpus CorpusFactory, repo archive.PostRepository, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ArchiveDirectoryCommand]) *ArchiveDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ArchiveDirectoryCommand) error {
		if !gates.archiveEnabled() {
			return ErrArchiveFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		set, err := corpus(store.Config{
			Directory: msg.Directory,
			Pattern:   msg.Pattern,
			Recursive: msg.Recursive,
		})
		if err != nil {
			return err
		}
		if err := set.Reload(ctx); err != nil {
			return err
		}

		archiver := archive.New(repo, archive.Config{Prune: msg.Prune}, baseLogger)
		result, err := archiver.Sync(ctx, set)
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"created_count":   result.Created,
			"updated_count":   result.Updated,
			"unchanged_count": result.Unchanged,
			"pruned_count":    result.Pruned,
			"rejected_count":  len(set.Report()),
			"prune":           msg.Prune,
		}).Info("posts.command.sync_directory.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ArchiveDirectoryCommand]{
		commands.WithLogger[ArchiveDirectoryCommand](baseLogger),
		commands.WithOperation[ArchiveDirectoryCommand](archiveOperation),
		commands.WithMessageFields(func(msg ArchiveDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Recursive {
				fields["recursive"] = true
			}
			if msg.Prune {
				fields["prune"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ArchiveDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ArchiveDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ArchiveDirectoryCommand].
func (h *ArchiveDirectoryHandler) Execute(ctx context.Context, msg ArchiveDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
