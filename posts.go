// Package posts loads, indexes, and renders a directory of front-mattered
// Markdown/MDX documents. The module exposes a parser with a strict header
// contract, a queryable in-memory store, an optional relational archive of
// the published view, and permalink resolution for hosts that serve the
// corpus over HTTP.
package posts

import (
	"context"
	"errors"

	"github.com/goliatone/go-posts/internal/archive"
	postscmd "github.com/goliatone/go-posts/internal/commands/posts"
	"github.com/goliatone/go-posts/internal/di"
	"github.com/goliatone/go-posts/internal/markdown"
	"github.com/goliatone/go-posts/internal/permalinks"
	"github.com/goliatone/go-posts/internal/store"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// DocumentService exports the document workflow contract for consumers of the posts package.
type DocumentService = interfaces.DocumentService

// DocumentStore exports the store contract.
type DocumentStore = interfaces.DocumentStore

// Document exports the parsed document type.
type Document = interfaces.Document

// FrontMatter exports the parsed header type.
type FrontMatter = interfaces.FrontMatter

// ParseOptions exports renderer overrides.
type ParseOptions = interfaces.ParseOptions

// LoadOptions exports discovery overrides.
type LoadOptions = interfaces.LoadOptions

// ListOptions exports store listing filters.
type ListOptions = interfaces.ListOptions

// TagCount exports the tag taxonomy entry.
type TagCount = interfaces.TagCount

// DocumentError exports the per-path load failure record.
type DocumentError = interfaces.DocumentError

// StoreService exports the concrete store for hosts that need slug lookups.
type StoreService = *store.Store

// ArchiveService exports the archiver contract.
type ArchiveService = *archive.Archiver

// ArchivedPost exports the archive record type.
type ArchivedPost = archive.Post

// PermalinkResolver exports the permalink resolution helper.
type PermalinkResolver = *permalinks.Resolver

// CommandHandlers exports the command handler set built during wiring.
type CommandHandlers = postscmd.HandlerSet

// ErrMalformedHeader reports a document without a well-formed front matter block.
var ErrMalformedHeader = markdown.ErrMalformedHeader

// ErrMissingRequiredField reports a header missing title, date, or draft.
var ErrMissingRequiredField = markdown.ErrMissingRequiredField

// MissingRequiredFieldError exports the field-carrying parse error.
type MissingRequiredFieldError = markdown.MissingRequiredFieldError

// ErrContentDisabled is returned by operations that need the content store
// when the module was built with Enabled set to false.
var ErrContentDisabled = errors.New("posts: content not enabled")

// ParseFrontMatter splits a raw document into its parsed header and body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	return markdown.ParseFrontMatter(source)
}

// MarshalFrontMatter serialises a header and body back into document form.
// Parsing the output yields the same header and body.
func MarshalFrontMatter(fm FrontMatter, body []byte) ([]byte, error) {
	return markdown.MarshalFrontMatter(fm, body)
}

// Module represents the top level posts runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a posts module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Documents returns the configured document service.
func (m *Module) Documents() DocumentService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.MarkdownService()
}

// Store returns the configured document store.
func (m *Module) Store() StoreService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.StoreService()
}

// Archiver returns the archive service when the archive is enabled.
func (m *Module) Archiver() ArchiveService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Archiver()
}

// Permalinks returns the permalink resolver.
func (m *Module) Permalinks() PermalinkResolver {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.PermalinkResolver()
}

// Commands returns the command handler set when commands are enabled.
func (m *Module) Commands() *CommandHandlers {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.CommandHandlers()
}

// Parser returns the configured markdown parser.
func (m *Module) Parser() interfaces.MarkdownParser {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Parser()
}

// Reload rescans the content directory and rebuilds the store index.
func (m *Module) Reload(ctx context.Context) error {
	if m == nil || m.container == nil || m.container.StoreService() == nil {
		return ErrContentDisabled
	}
	return m.container.StoreService().Reload(ctx)
}

// Close releases resources owned by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}

// NewGoldmarkParser builds the default goldmark-backed parser so hosts can
// render Markdown without constructing a full module.
func NewGoldmarkParser(defaults ParseOptions) interfaces.MarkdownParser {
	return markdown.NewGoldmarkParser(defaults)
}
