package archive

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

type staticSource struct {
	docs []*interfaces.Document
}

func (s *staticSource) Published() []*interfaces.Document {
	return s.docs
}

func TestArchiverSync_CreatesAndSkipsUnchanged(t *testing.T) {
	db := newTestDB(t)
	repo := NewBunPostRepository(db)
	archiver := New(repo, Config{}, nil)
	ctx := context.Background()

	source := &staticSource{docs: []*interfaces.Document{
		testDocument("introducing-reference-docs.mdx", "Introducing Reference Docs", "body one"),
		testDocument("guides/customizing-layouts.mdx", "Customizing Layouts", "body two"),
	}}

	result, err := archiver.Sync(ctx, source)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if result.Created != 2 || result.Updated != 0 || result.Unchanged != 0 {
		t.Fatalf("Sync() result = %+v, want 2 created", result)
	}

	record, err := repo.GetByPath(ctx, "guides/customizing-layouts.mdx")
	if err != nil {
		t.Fatalf("GetByPath() error = %v", err)
	}
	if record.Title != "Customizing Layouts" {
		t.Fatalf("GetByPath() title = %q", record.Title)
	}
	if record.BodyHTML == "" || record.Checksum == "" {
		t.Fatalf("GetByPath() returned incomplete record %+v", record)
	}

	result, err = archiver.Sync(ctx, source)
	if err != nil {
		t.Fatalf("Sync() second pass error = %v", err)
	}
	if result.Created != 0 || result.Updated != 0 || result.Unchanged != 2 {
		t.Fatalf("Sync() second pass result = %+v, want 2 unchanged", result)
	}
}

func TestArchiverSync_UpdatesChangedDocuments(t *testing.T) {
	db := newTestDB(t)
	repo := NewBunPostRepository(db)
	archiver := New(repo, Config{}, nil)
	ctx := context.Background()

	doc := testDocument("roadmap.mdx", "Roadmap", "original body")
	source := &staticSource{docs: []*interfaces.Document{doc}}

	if _, err := archiver.Sync(ctx, source); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	before, err := repo.GetByPath(ctx, "roadmap.mdx")
	if err != nil {
		t.Fatalf("GetByPath() error = %v", err)
	}

	source.docs = []*interfaces.Document{testDocument("roadmap.mdx", "Roadmap", "revised body")}
	result, err := archiver.Sync(ctx, source)
	if err != nil {
		t.Fatalf("Sync() after edit error = %v", err)
	}
	if result.Updated != 1 || result.Created != 0 {
		t.Fatalf("Sync() after edit result = %+v, want 1 updated", result)
	}

	after, err := repo.GetByPath(ctx, "roadmap.mdx")
	if err != nil {
		t.Fatalf("GetByPath() after edit error = %v", err)
	}
	if after.ID != before.ID {
		t.Fatalf("Sync() changed record identity: %s -> %s", before.ID, after.ID)
	}
	if after.Checksum == before.Checksum {
		t.Fatal("Sync() did not refresh checksum")
	}
}

func TestArchiverSync_PrunesOrphans(t *testing.T) {
	db := newTestDB(t)
	repo := NewBunPostRepository(db)
	archiver := New(repo, Config{Prune: true}, nil)
	ctx := context.Background()

	source := &staticSource{docs: []*interfaces.Document{
		testDocument("keep.mdx", "Keep", "keep body"),
		testDocument("drop.mdx", "Drop", "drop body"),
	}}
	if _, err := archiver.Sync(ctx, source); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	source.docs = source.docs[:1]
	result, err := archiver.Sync(ctx, source)
	if err != nil {
		t.Fatalf("Sync() prune pass error = %v", err)
	}
	if result.Pruned != 1 || result.Unchanged != 1 {
		t.Fatalf("Sync() prune pass result = %+v, want 1 pruned", result)
	}

	if _, err := repo.GetByPath(ctx, "drop.mdx"); err == nil {
		t.Fatal("GetByPath() expected error for pruned record")
	} else {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("GetByPath() error = %v, want NotFoundError", err)
		}
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 1 || records[0].Path != "keep.mdx" {
		t.Fatalf("List() = %+v, want only keep.mdx", records)
	}
}

func TestArchiverSync_Cancelled(t *testing.T) {
	db := newTestDB(t)
	repo := NewBunPostRepository(db)
	archiver := New(repo, Config{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &staticSource{docs: []*interfaces.Document{
		testDocument("keep.mdx", "Keep", "keep body"),
	}}
	if _, err := archiver.Sync(ctx, source); !errors.Is(err, context.Canceled) {
		t.Fatalf("Sync() error = %v, want context.Canceled", err)
	}
}

func testDocument(path, title, body string) *interfaces.Document {
	sum := sha256.Sum256([]byte(body))
	return &interfaces.Document{
		FilePath: path,
		FrontMatter: interfaces.FrontMatter{
			Title:   title,
			Slug:    title,
			Date:    time.Date(2023, time.November, 9, 0, 0, 0, 0, time.UTC),
			Tags:    []string{"core-features"},
			Summary: "Summary for " + title,
		},
		Body:     []byte(body),
		BodyHTML: []byte("<p>" + body + "</p>"),
		Checksum: sum[:],
	}
}

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open("sqlite3", "file:"+t.Name()+"?mode=memory&cache=shared&_fk=1")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = sqldb.Close()
	})

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	return db
}
