package markdown

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

func TestServiceLoad(t *testing.T) {
	svc := newTestService(t, true)

	doc, err := svc.Load(context.Background(), "getting-started.mdx", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if doc.FrontMatter.Title != "Getting Started" {
		t.Fatalf("unexpected title %q", doc.FrontMatter.Title)
	}
	if len(doc.BodyHTML) == 0 {
		t.Fatalf("expected BodyHTML to be populated")
	}
	if len(doc.Checksum) == 0 {
		t.Fatalf("expected checksum to be populated")
	}
}

func TestServiceLoadDirectory(t *testing.T) {
	svc := newTestService(t, true)

	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}

	var drafts int
	for _, doc := range docs {
		if filepath.Ext(doc.FilePath) != ".mdx" {
			t.Fatalf("expected mdx file, got %s", doc.FilePath)
		}
		if len(doc.Checksum) == 0 {
			t.Fatalf("expected checksum set for %s", doc.FilePath)
		}
		if doc.FrontMatter.Draft {
			drafts++
		}
	}

	if drafts != 1 {
		t.Fatalf("expected exactly one draft document, got %d", drafts)
	}

	for i := 1; i < len(docs); i++ {
		if docs[i-1].FilePath >= docs[i].FilePath {
			t.Fatalf("expected documents sorted by path: %s >= %s", docs[i-1].FilePath, docs[i].FilePath)
		}
	}
}

func TestServiceLoadDirectory_NonRecursive(t *testing.T) {
	svc := newTestService(t, false)

	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(docs) != 1 {
		t.Fatalf("expected only the root document, got %d", len(docs))
	}
	if docs[0].FilePath != "getting-started.mdx" {
		t.Fatalf("unexpected document %s", docs[0].FilePath)
	}
}

func TestServiceRender_SafeModeOverride(t *testing.T) {
	svc := newTestService(t, true)

	html, err := svc.Render(context.Background(), []byte("**bold** and <em>raw</em>"), interfaces.ParseOptions{
		SafeMode: true,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Fatalf("expected markdown rendered, got %q", got)
	}
	if strings.Contains(got, "<em>raw</em>") {
		t.Fatalf("expected raw HTML suppressed in safe mode, got %q", got)
	}
}

func TestServiceRenderDocument_NilDocument(t *testing.T) {
	svc := newTestService(t, true)

	if _, err := svc.RenderDocument(context.Background(), nil, interfaces.ParseOptions{}); err == nil {
		t.Fatalf("expected error for nil document")
	}
}

func TestServiceLoad_Cancelled(t *testing.T) {
	svc := newTestService(t, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Load(ctx, "getting-started.mdx", interfaces.LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func newTestService(tb testing.TB, recursive bool) *Service {
	tb.Helper()

	svc, err := NewService(Config{
		BasePath:  filepath.Join("testdata", "site"),
		Pattern:   "*.mdx",
		Recursive: recursive,
	}, nil)
	if err != nil {
		tb.Fatalf("NewService: %v", err)
	}
	return svc
}
