package markdown

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderDiscover(t *testing.T) {
	loader := newTestLoader(t, true)

	paths, err := loader.Discover(context.Background(), ".", LoadParams{})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{
		"drafts/upcoming-release.mdx",
		"getting-started.mdx",
		"guides/embedding-components.mdx",
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %d: %#v", len(want), len(paths), paths)
	}
	for i, path := range want {
		if paths[i] != path {
			t.Fatalf("expected paths[%d] = %s, got %s", i, path, paths[i])
		}
	}
}

func TestLoaderDiscover_PatternOverride(t *testing.T) {
	loader := newTestLoader(t, true)

	paths, err := loader.Discover(context.Background(), ".", LoadParams{Pattern: "*.txt"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(paths) != 1 || paths[0] != "notes.txt" {
		t.Fatalf("expected only notes.txt, got %#v", paths)
	}
}

func TestLoaderDiscover_NonRecursive(t *testing.T) {
	loader := newTestLoader(t, false)

	paths, err := loader.Discover(context.Background(), ".", LoadParams{})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(paths) != 1 || paths[0] != "getting-started.mdx" {
		t.Fatalf("expected only root documents, got %#v", paths)
	}
}

func TestLoaderLoadFile(t *testing.T) {
	loader := newTestLoader(t, true)

	result, err := loader.LoadFile(context.Background(), "guides/embedding-components.mdx", LoadParams{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if result.Document.FilePath != "guides/embedding-components.mdx" {
		t.Fatalf("unexpected file path %q", result.Document.FilePath)
	}
	if len(result.Document.Checksum) == 0 {
		t.Fatalf("expected checksum populated")
	}
	if len(result.Source) == 0 {
		t.Fatalf("expected raw source retained")
	}
	if result.Document.FrontMatter.Tags[0] != "guides" {
		t.Fatalf("unexpected tags %#v", result.Document.FrontMatter.Tags)
	}
}

func newTestLoader(tb testing.TB, recursive bool) *Loader {
	tb.Helper()

	base := filepath.Join("testdata", "site")
	return NewLoader(os.DirFS(base), LoaderConfig{
		BasePath:  base,
		Recursive: recursive,
	})
}
