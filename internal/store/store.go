// Package store indexes a directory of front-mattered documents as an
// addressable set. Documents that fail to parse are excluded from listings
// and surfaced in a per-path report instead of aborting the batch.
package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/internal/markdown"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Config controls how the store scans its backing directory.
type Config struct {
	Directory string
	Pattern   string
	Recursive bool
	// Validate, when set, runs after parsing; documents that fail it are
	// excluded from listings and surface in the report.
	Validate func(*interfaces.Document) error
}

// Store is an in-memory index over a directory of documents keyed by file
// path. It is safe for concurrent readers; Reload swaps the index atomically.
type Store struct {
	svc    *markdown.Service
	cfg    Config
	logger interfaces.Logger

	mu     sync.RWMutex
	docs   map[string]*interfaces.Document
	order  []string
	report []interfaces.DocumentError
}

var _ interfaces.DocumentStore = (*Store)(nil)

// New builds a store over the supplied document service. The index starts
// empty; call Reload to populate it.
func New(svc *markdown.Service, cfg Config, logger interfaces.Logger) *Store {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Store{
		svc:    svc,
		cfg:    cfg,
		logger: logger,
		docs:   map[string]*interfaces.Document{},
	}
}

// Reload rescans the backing directory and rebuilds the index. Parse failures
// are collected per path; the scan itself only fails on filesystem errors.
func (s *Store) Reload(ctx context.Context) error {
	loader := s.svc.Loader()

	params := markdown.LoadParams{Pattern: s.cfg.Pattern}
	if s.cfg.Recursive {
		recursive := true
		params.Recursive = &recursive
	}

	dir := s.cfg.Directory
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}

	paths, err := loader.Discover(ctx, dir, params)
	if err != nil {
		return err
	}

	docs := make(map[string]*interfaces.Document, len(paths))
	slugs := make(map[string]string, len(paths))
	var report []interfaces.DocumentError

	for _, path := range paths {
		result, err := loader.LoadFile(ctx, path, params)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			report = append(report, interfaces.DocumentError{Path: path, Err: err})
			logging.WithDocumentContext(s.logger, path, false, "reload").
				Warn("store.document.rejected", "error", err)
			continue
		}

		doc := result.Document
		if s.cfg.Validate != nil {
			if err := s.cfg.Validate(doc); err != nil {
				report = append(report, interfaces.DocumentError{Path: path, Err: err})
				logging.WithDocumentContext(s.logger, path, doc.FrontMatter.Draft, "reload").
					Warn("store.document.rejected", "error", err)
				continue
			}
		}
		resolved := slugFor(doc)
		if prev, taken := slugs[resolved]; taken {
			reassigned := disambiguateSlug(resolved, doc.FilePath, slugs)
			report = append(report, interfaces.DocumentError{
				Path: doc.FilePath,
				Err:  fmt.Errorf("slug %q already used by %s, reassigned to %q: %w", resolved, prev, reassigned, ErrSlugCollision),
			})
			logging.WithDocumentContext(s.logger, doc.FilePath, doc.FrontMatter.Draft, "reload").
				Warn("store.slug.collision", "slug", resolved, "existing", prev, "reassigned", reassigned)
			resolved = reassigned
		}
		slugs[resolved] = doc.FilePath
		doc.FrontMatter.Slug = resolved
		docs[doc.FilePath] = doc
	}

	order := orderByDate(docs)

	s.mu.Lock()
	s.docs = docs
	s.order = order
	s.report = report
	s.mu.Unlock()

	s.logger.Info("store.reload.completed",
		"documents", len(docs),
		"rejected", len(report),
	)
	return nil
}

// Get returns the document stored under the given file path.
func (s *Store) Get(path string) (*interfaces.Document, bool) {
	normalized := filepath.ToSlash(filepath.Clean(path))

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[normalized]
	return doc, ok
}

// GetBySlug returns the first document whose resolved slug matches.
func (s *Store) GetBySlug(slug string) (*interfaces.Document, bool) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, path := range s.order {
		if doc := s.docs[path]; doc != nil && doc.FrontMatter.Slug == slug {
			return doc, true
		}
	}
	return nil, false
}

// List returns documents matching the supplied filter, ordered by date
// descending with path as the tiebreak.
func (s *Store) List(opts interfaces.ListOptions) []*interfaces.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*interfaces.Document, 0, len(s.order))
	for _, path := range s.order {
		doc := s.docs[path]
		if doc == nil {
			continue
		}
		if doc.FrontMatter.Draft && !opts.IncludeDrafts {
			continue
		}
		if opts.Tag != "" && !hasTag(doc, opts.Tag) {
			continue
		}
		out = append(out, doc)
	}
	return out
}

// Published returns non-draft documents ordered by date descending.
func (s *Store) Published() []*interfaces.Document {
	return s.List(interfaces.ListOptions{})
}

// Tags returns the tag taxonomy across parseable documents, sorted by label.
// Draft documents contribute to the taxonomy; use List to filter listings.
func (s *Store) Tags() []interfaces.TagCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[string]int{}
	for _, doc := range s.docs {
		for _, tag := range doc.FrontMatter.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			counts[tag]++
		}
	}

	out := make([]interfaces.TagCount, 0, len(counts))
	for tag, count := range counts {
		out = append(out, interfaces.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Tag < out[j].Tag
	})
	return out
}

// Report returns per-document diagnostics from the last reload: parse and
// validation failures plus slug collisions. Colliding documents stay in the
// index under their reassigned slug.
func (s *Store) Report() []interfaces.DocumentError {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]interfaces.DocumentError, len(s.report))
	copy(out, s.report)
	return out
}

// Len reports how many documents parsed during the last reload.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func hasTag(doc *interfaces.Document, tag string) bool {
	for _, candidate := range doc.FrontMatter.Tags {
		if strings.EqualFold(strings.TrimSpace(candidate), tag) {
			return true
		}
	}
	return false
}

func orderByDate(docs map[string]*interfaces.Document) []string {
	order := make([]string, 0, len(docs))
	for path := range docs {
		order = append(order, path)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := docs[order[i]], docs[order[j]]
		if !a.FrontMatter.Date.Equal(b.FrontMatter.Date) {
			return a.FrontMatter.Date.After(b.FrontMatter.Date)
		}
		return a.FilePath < b.FilePath
	})
	return order
}
