package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const fixtureDoc = `---
title: 'Bootstrap Check'
date: '2023-11-09'
draft: false
---

Hello
`

func TestBuildModuleWiresServices(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bootstrap-check.mdx"), []byte(fixtureDoc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	module, err := BuildModule(Options{
		ContentDir: dir,
		Recursive:  true,
	})
	if err != nil {
		t.Fatalf("BuildModule() error = %v", err)
	}
	t.Cleanup(func() { _ = module.Module.Close() })

	if module.Service == nil || module.Store == nil || module.Logger == nil {
		t.Fatalf("BuildModule() returned incomplete module %+v", module)
	}

	if err := module.Store.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := len(module.Store.Published()); got != 1 {
		t.Fatalf("Published() returned %d documents, want 1", got)
	}
}

func TestBuildModuleEnablesCommands(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bootstrap-check.mdx"), []byte(fixtureDoc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	module, err := BuildModule(Options{
		ContentDir: dir,
		Recursive:  true,
		Commands:   true,
	})
	if err != nil {
		t.Fatalf("BuildModule() error = %v", err)
	}
	t.Cleanup(func() { _ = module.Module.Close() })

	if module.Module.Commands() == nil {
		t.Fatal("expected command handlers")
	}
}

func TestSplitList(t *testing.T) {
	if got := SplitList(""); got != nil {
		t.Fatalf("SplitList(\"\") = %v, want nil", got)
	}
	got := SplitList(" core-features, announcements ,,guides ")
	want := []string{"core-features", "announcements", "guides"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitList() = %v, want %v", got, want)
	}
}
