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
		strict     = flag.Bool("strict", false, "Exit non-zero when any document is rejected")
	)

	flag.Parse()

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  *recursive,
		Commands:   true,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}
	defer module.Module.Close()

	handlers := module.Module.Commands()
	if handlers == nil || handlers.Validate == nil {
		log.Fatalf("command handlers not configured; ensure Features.Commands is enabled")
	}

	err = handlers.Validate.Execute(context.Background(), postscmd.ValidateDirectoryCommand{
		Directory: *contentDir,
		Pattern:   *pattern,
		Recursive: *recursive,
		Strict:    *strict,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintln(os.Stdout, "validation completed")
}
