package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-posts/cmd/posts/internal/bootstrap"
	postscmd "github.com/goliatone/go-posts/internal/commands/posts"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	var (
		contentDir = flag.String("content-dir", "content", "Path to the content root")
		pattern    = flag.String("pattern", "*.mdx", "Glob pattern applied when discovering documents")
		recursive  = flag.Bool("recursive", true, "Walk nested directories")
		dsn        = flag.String("dsn", "file:posts.db?cache=shared&_fk=1", "Archive database DSN")
		prune      = flag.Bool("prune", false, "Remove archive records without a matching published document")
	)

	flag.Parse()

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  *recursive,
		ArchiveDSN: *dsn,
		Prune:      *prune,
		Commands:   true,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}
	defer module.Module.Close()

	handlers := module.Module.Commands()
	if handlers == nil || handlers.Archive == nil {
		log.Fatalf("archive handler not configured; ensure Features.Archive is enabled and a DSN is set")
	}

	err = handlers.Archive.Execute(context.Background(), postscmd.ArchiveDirectoryCommand{
		Directory: *contentDir,
		Pattern:   *pattern,
		Recursive: *recursive,
		Prune:     *prune,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "archive sync failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintln(os.Stdout, "archive sync completed")
}
