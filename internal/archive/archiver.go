// Package archive persists the published view of a document store into a
// relational database. Records are matched by file path and refreshed only
// when the source checksum changes, so repeated syncs of an unchanged corpus
// leave the table untouched.
package archive

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-posts/internal/identity"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// NotFoundError indicates a missing archive record.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// PostRepository is the persistence surface the archiver drives.
type PostRepository interface {
	Create(ctx context.Context, post *Post) (*Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetByPath(ctx context.Context, path string) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
	Update(ctx context.Context, post *Post) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PublishedSource supplies the documents worth archiving. The store's
// published view satisfies it.
type PublishedSource interface {
	Published() []*interfaces.Document
}

// Config controls archiver behaviour.
type Config struct {
	// Prune removes archive records whose source document no longer appears
	// in the published view.
	Prune bool
}

// SyncResult summarises one archiver pass.
type SyncResult struct {
	Created   int
	Updated   int
	Unchanged int
	Pruned    int
}

// Archiver mirrors a published document set into a PostRepository.
type Archiver struct {
	repo   PostRepository
	cfg    Config
	logger interfaces.Logger
}

// New builds an archiver over the supplied repository.
func New(repo PostRepository, cfg Config, logger interfaces.Logger) *Archiver {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Archiver{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// Sync reconciles the source's published documents against the archive.
// New documents are inserted, changed documents (by checksum) are updated,
// and, when pruning is enabled, records without a source document are removed.
func (a *Archiver) Sync(ctx context.Context, source PublishedSource) (SyncResult, error) {
	var result SyncResult
	if source == nil {
		return result, fmt.Errorf("archive: source is required")
	}

	existing, err := a.repo.List(ctx)
	if err != nil {
		return result, fmt.Errorf("archive: list records: %w", err)
	}
	byPath := make(map[string]*Post, len(existing))
	for _, record := range existing {
		byPath[record.Path] = record
	}

	seen := make(map[string]struct{})
	for _, doc := range source.Published() {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		record := recordFromDocument(doc)
		seen[record.Path] = struct{}{}

		prev, ok := byPath[record.Path]
		if !ok {
			if _, err := a.repo.Create(ctx, record); err != nil {
				return result, fmt.Errorf("archive: create %q: %w", record.Path, err)
			}
			result.Created++
			continue
		}

		if prev.Checksum == record.Checksum {
			result.Unchanged++
			continue
		}

		record.ID = prev.ID
		record.CreatedAt = prev.CreatedAt
		record.UpdatedAt = time.Now().UTC()
		if _, err := a.repo.Update(ctx, record); err != nil {
			return result, fmt.Errorf("archive: update %q: %w", record.Path, err)
		}
		result.Updated++
	}

	if a.cfg.Prune {
		for path, record := range byPath {
			if _, ok := seen[path]; ok {
				continue
			}
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			default:
			}
			if err := a.repo.Delete(ctx, record.ID); err != nil {
				return result, fmt.Errorf("archive: prune %q: %w", path, err)
			}
			result.Pruned++
		}
	}

	a.logger.Info("archive.sync.completed",
		"created", result.Created,
		"updated", result.Updated,
		"unchanged", result.Unchanged,
		"pruned", result.Pruned,
	)
	return result, nil
}

// EnsureSchema creates the archive table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return fmt.Errorf("archive: database is required")
	}
	if _, err := db.NewCreateTable().Model((*Post)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("archive: create table: %w", err)
	}
	return nil
}

func recordFromDocument(doc *interfaces.Document) *Post {
	record := &Post{
		ID:          identity.DocumentUUID(doc.FilePath),
		Path:        doc.FilePath,
		Slug:        doc.FrontMatter.Slug,
		Title:       doc.FrontMatter.Title,
		Tags:        append([]string(nil), doc.FrontMatter.Tags...),
		Authors:     append([]string(nil), doc.FrontMatter.Authors...),
		Images:      append([]string(nil), doc.FrontMatter.Images...),
		PublishedAt: doc.FrontMatter.Date,
		BodyHTML:    string(doc.BodyHTML),
		Checksum:    hex.EncodeToString(doc.Checksum),
	}
	if summary := doc.FrontMatter.Summary; summary != "" {
		record.Summary = &summary
	}
	if !doc.FrontMatter.Lastmod.IsZero() {
		lastmod := doc.FrontMatter.Lastmod
		record.Lastmod = &lastmod
	}
	return record
}
