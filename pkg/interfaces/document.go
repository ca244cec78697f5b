package interfaces

import (
	"context"
	"time"
)

// MarkdownParser defines how raw Markdown/MDX body bytes are converted into
// HTML. Implementations should be reusable across calls so hosts can share a
// single parser instance without additional locking.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// DocumentService exposes the file workflows for front-mattered documents:
// loading single files or directories, rendering bodies into HTML, and
// serializing front matter back out.
type DocumentService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
}

// Document represents a content file with parsed metadata and body. The
// struct is shared between the interfaces package and internal
// implementations so consumers can depend on a stable contract.
type Document struct {
	// FilePath identifies the document; it is unique within a store.
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum stores a digest of the original file content (typically SHA-256)
	// so archive workflows can detect changes without re-writing unchanged files.
	Checksum []byte
}

// FrontMatter models metadata extracted from the delimited header block.
// Title, Date, and Draft are required by the parser; the remaining fields
// default to their zero values. Custom keeps unknown header fields so
// forward-compatible documents survive a parse/serialize round trip.
type FrontMatter struct {
	Title        string         `yaml:"title" json:"title"`
	Slug         string         `yaml:"slug" json:"slug"`
	Summary      string         `yaml:"summary" json:"summary"`
	Tags         []string       `yaml:"tags" json:"tags"`
	Images       []string       `yaml:"images" json:"images"`
	Authors      []string       `yaml:"authors" json:"authors"`
	Layout       string         `yaml:"layout" json:"layout"`
	CanonicalURL string         `yaml:"canonicalUrl" json:"canonicalUrl"`
	Date         time.Time      `yaml:"date" json:"date"`
	Lastmod      time.Time      `yaml:"lastmod" json:"lastmod"`
	Draft        bool           `yaml:"draft" json:"draft"`
	Custom       map[string]any `yaml:",inline" json:"custom"`
	Raw          map[string]any `yaml:"-" json:"raw"`
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}
