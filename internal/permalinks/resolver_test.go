package permalinks

import (
	"testing"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

func TestResolverDocumentURL(t *testing.T) {
	resolver := newTestResolver(t)

	doc := &interfaces.Document{
		FilePath: "introducing-reference-docs.mdx",
		FrontMatter: interfaces.FrontMatter{
			Slug: "introducing-reference-docs",
		},
	}

	url, err := resolver.DocumentURL(doc)
	if err != nil {
		t.Fatalf("DocumentURL: %v", err)
	}
	if url != "https://example.com/posts/introducing-reference-docs" {
		t.Fatalf("unexpected URL %q", url)
	}
}

func TestResolverDocumentURL_MissingSlug(t *testing.T) {
	resolver := newTestResolver(t)

	if _, err := resolver.DocumentURL(&interfaces.Document{FilePath: "a.mdx"}); err == nil {
		t.Fatalf("expected error for slugless document")
	}
}

func TestResolverTagURL(t *testing.T) {
	resolver := newTestResolver(t)

	url, err := resolver.TagURL("core-features")
	if err != nil {
		t.Fatalf("TagURL: %v", err)
	}
	if url != "https://example.com/tags/core-features" {
		t.Fatalf("unexpected URL %q", url)
	}
}

func TestResolverNilManager(t *testing.T) {
	resolver := NewResolver(Options{})

	url, err := resolver.DocumentURL(&interfaces.Document{
		FrontMatter: interfaces.FrontMatter{Slug: "x"},
	})
	if err != nil || url != "" {
		t.Fatalf("expected silent no-op without a manager, got %q / %v", url, err)
	}
}

func newTestResolver(tb testing.TB) *Resolver {
	tb.Helper()

	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "site",
				BaseURL: "https://example.com",
				Paths: map[string]string{
					"post": "/posts/:slug",
					"tag":  "/tags/:tag",
				},
			},
		},
	})

	return NewResolver(Options{Manager: manager})
}
