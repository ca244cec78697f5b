package archive

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Post is the durable snapshot of a published document. Records are keyed by
// the source file path and carry the rendered body so consumers can serve
// posts without touching the content directory.
type Post struct {
	bun.BaseModel `bun:"table:archived_posts,alias:ap"`

	ID          uuid.UUID  `bun:",pk,type:uuid"         json:"id"`
	Path        string     `bun:"path,notnull,unique"   json:"path"`
	Slug        string     `bun:"slug,notnull"          json:"slug"`
	Title       string     `bun:"title,notnull"         json:"title"`
	Summary     *string    `bun:"summary"               json:"summary,omitempty"`
	Tags        []string   `bun:"tags,type:jsonb"       json:"tags,omitempty"`
	Authors     []string   `bun:"authors,type:jsonb"    json:"authors,omitempty"`
	Images      []string   `bun:"images,type:jsonb"     json:"images,omitempty"`
	PublishedAt time.Time  `bun:"published_at,notnull"  json:"published_at"`
	Lastmod     *time.Time `bun:"lastmod,nullzero"      json:"lastmod,omitempty"`
	BodyHTML    string     `bun:"body_html"             json:"body_html,omitempty"`
	Checksum    string     `bun:"checksum,notnull"      json:"checksum"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
