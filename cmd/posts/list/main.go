package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	posts "github.com/goliatone/go-posts"
	"github.com/goliatone/go-posts/cmd/posts/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

type listEntry struct {
	Path    string   `json:"path"`
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Date    string   `json:"date"`
	Draft   bool     `json:"draft,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Summary string   `json:"summary,omitempty"`
}

func main() {
	var (
		contentDir = flag.String("content-dir", "content", "Path to the content root")
		pattern    = flag.String("pattern", "*.mdx", "Glob pattern applied when discovering documents")
		recursive  = flag.Bool("recursive", true, "Walk nested directories")
		drafts     = flag.Bool("drafts", false, "Include draft documents in the listing")
		tag        = flag.String("tag", "", "List only documents carrying this tag")
		showTags   = flag.Bool("tags", false, "Print the tag taxonomy instead of documents")
		asJSON     = flag.Bool("json", false, "Emit the listing as JSON")
	)

	flag.Parse()

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  *recursive,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}
	defer module.Module.Close()

	if err := module.Store.Reload(context.Background()); err != nil {
		log.Fatalf("reload store: %v", err)
	}

	for _, failure := range module.Store.Report() {
		fmt.Fprintf(os.Stderr, "skipped %s: %v\n", failure.Path, failure.Err)
	}

	if *showTags {
		printTags(module.Store.Tags(), *asJSON)
		return
	}

	docs := module.Store.List(posts.ListOptions{
		IncludeDrafts: *drafts,
		Tag:           *tag,
	})

	if *asJSON {
		entries := make([]listEntry, 0, len(docs))
		for _, doc := range docs {
			entries = append(entries, listEntry{
				Path:    doc.FilePath,
				Slug:    doc.FrontMatter.Slug,
				Title:   doc.FrontMatter.Title,
				Date:    doc.FrontMatter.Date.Format("2006-01-02"),
				Draft:   doc.FrontMatter.Draft,
				Tags:    doc.FrontMatter.Tags,
				Summary: doc.FrontMatter.Summary,
			})
		}
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			log.Fatalf("encode listing: %v", err)
		}
		fmt.Fprintln(os.Stdout, string(out))
		return
	}

	for _, doc := range docs {
		marker := " "
		if doc.FrontMatter.Draft {
			marker = "d"
		}
		fmt.Fprintf(os.Stdout, "%s %s  %-40s  %s\n",
			marker,
			doc.FrontMatter.Date.Format("2006-01-02"),
			doc.FrontMatter.Slug,
			doc.FrontMatter.Title,
		)
	}
}

func printTags(tags []posts.TagCount, asJSON bool) {
	if asJSON {
		out, err := json.MarshalIndent(tags, "", "  ")
		if err != nil {
			log.Fatalf("encode tags: %v", err)
		}
		fmt.Fprintln(os.Stdout, string(out))
		return
	}
	for _, entry := range tags {
		fmt.Fprintf(os.Stdout, "%4d  %s\n", entry.Count, entry.Tag)
	}
}
