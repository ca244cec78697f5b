package posts_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	posts "github.com/goliatone/go-posts"
)

const announcementDoc = `---
title: 'Introducing Reference Docs'
date: '2023-11-09'
lastmod: '2023-11-10'
tags: [core-features, announcements]
draft: false
summary: 'A tour of the reference documentation.'
images: []
---

## Overview

Welcome to the reference docs.
`

const draftDoc = `---
title: 'Upcoming Release'
date: '2023-12-20'
draft: true
summary: 'Notes for the next release.'
---

Not ready yet.
`

func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"introducing-reference-docs.mdx": announcementDoc,
		"drafts/upcoming-release.mdx":    draftDoc,
	}
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	return dir
}

func newTestModule(t *testing.T, mutate func(*posts.Config)) *posts.Module {
	t.Helper()

	cfg := posts.DefaultConfig()
	cfg.Content.Dir = writeCorpus(t)
	if mutate != nil {
		mutate(&cfg)
	}

	module, err := posts.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })

	if err := module.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	return module
}

func TestModulePublishedExcludesDrafts(t *testing.T) {
	module := newTestModule(t, nil)

	published := module.Store().Published()
	if len(published) != 1 {
		t.Fatalf("Published() returned %d documents, want 1", len(published))
	}
	if published[0].FrontMatter.Title != "Introducing Reference Docs" {
		t.Fatalf("Published() title = %q", published[0].FrontMatter.Title)
	}

	all := module.Store().List(posts.ListOptions{IncludeDrafts: true})
	if len(all) != 2 {
		t.Fatalf("List() returned %d documents, want 2", len(all))
	}
}

func TestModuleReloadDisabledContent(t *testing.T) {
	cfg := posts.DefaultConfig()
	cfg.Enabled = false

	module, err := posts.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })

	if err := module.Reload(context.Background()); !errors.Is(err, posts.ErrContentDisabled) {
		t.Fatalf("Reload() error = %v, want ErrContentDisabled", err)
	}
}

func TestModuleRendersDocuments(t *testing.T) {
	module := newTestModule(t, nil)

	doc, ok := module.Store().Get("introducing-reference-docs.mdx")
	if !ok {
		t.Fatal("Get() did not find document")
	}

	html, err := module.Documents().RenderDocument(context.Background(), doc, posts.ParseOptions{})
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	if !bytes.Contains(html, []byte("<h2")) {
		t.Fatalf("RenderDocument() output missing heading: %s", html)
	}
}

func TestModuleArchivesPublishedView(t *testing.T) {
	module := newTestModule(t, func(cfg *posts.Config) {
		cfg.Features.Archive = true
		cfg.Archive.Enabled = true
		cfg.Archive.DSN = "file:posts_module_test?mode=memory&cache=shared&_fk=1"
	})

	result, err := module.Archiver().Sync(context.Background(), module.Store())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("Sync() result = %+v, want 1 created", result)
	}
}

func TestParseFrontMatterRoundTrip(t *testing.T) {
	fm, body, err := posts.ParseFrontMatter([]byte(announcementDoc))
	if err != nil {
		t.Fatalf("ParseFrontMatter() error = %v", err)
	}
	if fm.Title != "Introducing Reference Docs" || fm.Draft {
		t.Fatalf("ParseFrontMatter() = %+v", fm)
	}

	out, err := posts.MarshalFrontMatter(fm, body)
	if err != nil {
		t.Fatalf("MarshalFrontMatter() error = %v", err)
	}

	fm2, body2, err := posts.ParseFrontMatter(out)
	if err != nil {
		t.Fatalf("ParseFrontMatter() reparse error = %v", err)
	}
	if fm2.Title != fm.Title || !fm2.Date.Equal(fm.Date) || !bytes.Equal(body, body2) {
		t.Fatal("round trip changed document")
	}
}

func TestParseFrontMatterErrors(t *testing.T) {
	if _, _, err := posts.ParseFrontMatter([]byte("no header at all")); !errors.Is(err, posts.ErrMalformedHeader) {
		t.Fatalf("expected ErrMalformedHeader, got %v", err)
	}

	headerless := "---\ntitle: 'X'\ndate: '2023-11-09'\n---\n\nBody"
	_, _, err := posts.ParseFrontMatter([]byte(headerless))
	if !errors.Is(err, posts.ErrMissingRequiredField) {
		t.Fatalf("expected ErrMissingRequiredField, got %v", err)
	}
	var missing *posts.MissingRequiredFieldError
	if !errors.As(err, &missing) || missing.Field != "draft" {
		t.Fatalf("expected missing draft field, got %v", err)
	}
}
