// Package permalinks builds public URLs for published documents using a
// go-urlkit route manager supplied by the host.
package permalinks

import (
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Options configures the go-urlkit backed resolver.
type Options struct {
	Manager *urlkit.RouteManager
	// Group selects the route group, defaulting to "site".
	Group string
	// PostRoute names the per-document route, defaulting to "post".
	PostRoute string
	// TagRoute names the tag listing route, defaulting to "tag".
	TagRoute string
	// SlugParam is the route parameter carrying the document slug.
	SlugParam string
	// TagParam is the route parameter carrying the tag label.
	TagParam string
}

// Resolver resolves document and tag URLs using a go-urlkit RouteManager.
type Resolver struct {
	manager *urlkit.RouteManager

	group     string
	postRoute string
	tagRoute  string
	slugParam string
	tagParam  string

	mu     sync.RWMutex
	cached *urlkit.Group
}

// NewResolver constructs a resolver backed by go-urlkit.
func NewResolver(opts Options) *Resolver {
	if opts.Group == "" {
		opts.Group = "site"
	}
	if opts.PostRoute == "" {
		opts.PostRoute = "post"
	}
	if opts.TagRoute == "" {
		opts.TagRoute = "tag"
	}
	if opts.SlugParam == "" {
		opts.SlugParam = "slug"
	}
	if opts.TagParam == "" {
		opts.TagParam = "tag"
	}

	return &Resolver{
		manager:   opts.Manager,
		group:     strings.TrimSpace(opts.Group),
		postRoute: strings.TrimSpace(opts.PostRoute),
		tagRoute:  strings.TrimSpace(opts.TagRoute),
		slugParam: opts.SlugParam,
		tagParam:  opts.TagParam,
	}
}

// DocumentURL builds the public URL for a document from its resolved slug.
func (r *Resolver) DocumentURL(doc *interfaces.Document) (string, error) {
	if r == nil || r.manager == nil || doc == nil {
		return "", nil
	}

	slug := strings.TrimSpace(doc.FrontMatter.Slug)
	if slug == "" {
		return "", fmt.Errorf("permalinks: document %s has no slug", doc.FilePath)
	}

	return r.build(r.postRoute, map[string]any{r.slugParam: slug})
}

// TagURL builds the public URL for a tag listing.
func (r *Resolver) TagURL(tag string) (string, error) {
	if r == nil || r.manager == nil {
		return "", nil
	}

	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", fmt.Errorf("permalinks: tag is empty")
	}

	return r.build(r.tagRoute, map[string]any{r.tagParam: tag})
}

func (r *Resolver) build(route string, params map[string]any) (string, error) {
	group, err := r.routeGroup()
	if err != nil || group == nil {
		return "", err
	}

	builder, err := safeBuilder(group, route)
	if err != nil {
		return "", err
	}

	for key, val := range params {
		builder.WithParam(key, val)
	}

	url, err := builder.Build()
	if err != nil {
		return "", err
	}
	return url, nil
}

func (r *Resolver) routeGroup() (*urlkit.Group, error) {
	r.mu.RLock()
	group := r.cached
	r.mu.RUnlock()
	if group != nil {
		return group, nil
	}

	group, err := lookupGroup(r.manager, r.group)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cached = group
	r.mu.Unlock()
	return group, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("permalinks: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("permalinks: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("permalinks: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("permalinks: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}
