package interfaces

import "context"

// DocumentStore exposes the loaded content corpus as an addressable set.
// Listings never include documents that failed to parse; those surface in
// the store's report keyed by file path.
type DocumentStore interface {
	// Get returns the document stored under the given file path.
	Get(path string) (*Document, bool)
	// List returns documents matching the supplied filter.
	List(opts ListOptions) []*Document
	// Published returns non-draft documents ordered by date descending.
	Published() []*Document
	// Tags returns the tag taxonomy across parseable documents.
	Tags() []TagCount
	// Report returns per-document load failures from the last reload.
	Report() []DocumentError
	// Reload rescans the backing directory and rebuilds the index.
	Reload(ctx context.Context) error
}

// ListOptions filters store listings. The zero value lists the published
// view: parsed non-draft documents, ordered by date descending.
type ListOptions struct {
	IncludeDrafts bool
	Tag           string
}

// TagCount pairs a tag label with the number of documents carrying it.
type TagCount struct {
	Tag   string
	Count int
}

// DocumentError reports a document that could not be parsed, identified by
// its file path. Batch loads collect these instead of aborting.
type DocumentError struct {
	Path string
	Err  error
}

func (e DocumentError) Error() string {
	if e.Err == nil {
		return e.Path
	}
	return e.Path + ": " + e.Err.Error()
}

func (e DocumentError) Unwrap() error { return e.Err }
