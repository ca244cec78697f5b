// Package di wires module dependencies from runtime configuration. Hosts can
// override any binding through options before the container is finalised.
package di

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-posts/internal/archive"
	postscmd "github.com/goliatone/go-posts/internal/commands/posts"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/internal/logging/gologger"
	"github.com/goliatone/go-posts/internal/markdown"
	"github.com/goliatone/go-posts/internal/permalinks"
	"github.com/goliatone/go-posts/internal/runtimeconfig"
	"github.com/goliatone/go-posts/internal/store"
	"github.com/goliatone/go-posts/internal/validation"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

const schemaTimeout = 5 * time.Second

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	parser         interfaces.MarkdownParser

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	routeManager *urlkit.RouteManager

	markdownSvc *markdown.Service
	storeSvc    *store.Store
	archiveRepo *archive.BunPostRepository
	archiver    *archive.Archiver
	resolver    *permalinks.Resolver
	handlers    *postscmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the default logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithParser overrides the default goldmark parser.
func WithParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithBunDB supplies an existing database handle for the archive. The caller
// stays responsible for closing it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithRouteManager supplies a pre-built urlkit route manager for permalinks.
func WithRouteManager(manager *urlkit.RouteManager) Option {
	return func(c *Container) {
		c.routeManager = manager
	}
}

// NewContainer validates the configuration and builds the dependency graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureParser()

	if cfg.Enabled {
		if err := c.configureContent(); err != nil {
			return nil, err
		}
	}

	c.configureCacheDefaults()

	if cfg.Archive.Enabled {
		if err := c.configureArchive(); err != nil {
			return nil, err
		}
	}

	c.configurePermalinks()

	if cfg.Features.Commands && cfg.Commands.Enabled {
		if err := c.configureCommands(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	if strings.EqualFold(strings.TrimSpace(c.Config.Logging.Provider), "gologger") {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	}
	return nil
}

func (c *Container) configureParser() {
	if c.parser != nil {
		return
	}
	c.parser = markdown.NewGoldmarkParser(c.parseOptions())
}

func (c *Container) configureContent() error {
	svc, err := markdown.NewService(markdown.Config{
		BasePath:  c.Config.Content.Dir,
		Pattern:   c.Config.Content.Pattern,
		Recursive: c.Config.Content.Recursive,
		Parser:    c.parseOptions(),
	}, c.parser)
	if err != nil {
		return err
	}
	c.markdownSvc = svc
	c.storeSvc = store.New(svc, store.Config{
		Pattern:   c.Config.Content.Pattern,
		Recursive: c.Config.Content.Recursive,
		Validate:  c.schemaValidator(),
	}, logging.StoreLogger(c.loggerProvider))
	return nil
}

func (c *Container) schemaValidator() func(*interfaces.Document) error {
	if !c.Config.Features.Schema {
		return nil
	}
	schema := validation.DefaultFrontMatterSchema()
	return func(doc *interfaces.Document) error {
		return validation.ValidateFrontMatter(schema, doc.FrontMatter.Raw)
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureArchive() error {
	if c.bunDB == nil {
		driver := strings.TrimSpace(c.Config.Archive.Driver)
		if driver == "" {
			driver = "sqlite3"
		}
		if driver != "sqlite3" {
			return fmt.Errorf("posts: unsupported archive driver %q", driver)
		}
		sqldb, err := sql.Open(driver, c.Config.Archive.DSN)
		if err != nil {
			return fmt.Errorf("posts: open archive database: %w", err)
		}
		c.bunDB = bun.NewDB(sqldb, sqlitedialect.New())
		c.ownsDB = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()
	if err := archive.EnsureSchema(ctx, c.bunDB); err != nil {
		return err
	}

	c.archiveRepo = archive.NewBunPostRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.archiver = archive.New(c.archiveRepo, archive.Config{
		Prune: c.Config.Archive.Prune,
	}, logging.ArchiveLogger(c.loggerProvider))
	return nil
}

func (c *Container) configurePermalinks() {
	if c.routeManager == nil && c.Config.Permalinks.RouteConfig != nil {
		c.routeManager = urlkit.NewRouteManager(c.Config.Permalinks.RouteConfig)
	}
	c.resolver = permalinks.NewResolver(permalinks.Options{
		Manager:   c.routeManager,
		Group:     c.Config.Permalinks.Group,
		PostRoute: c.Config.Permalinks.PostRoute,
		TagRoute:  c.Config.Permalinks.TagRoute,
		SlugParam: c.Config.Permalinks.SlugParam,
		TagParam:  c.Config.Permalinks.TagParam,
	})
}

func (c *Container) configureCommands() error {
	gates := postscmd.FeatureGates{
		StoreEnabled:   func() bool { return c.Config.Features.Store },
		ArchiveEnabled: func() bool { return c.Config.Features.Archive },
	}

	var repo archive.PostRepository
	if c.archiveRepo != nil {
		repo = c.archiveRepo
	}

	handlers, err := postscmd.RegisterPostsCommands(nil, c.corpusFactory(), repo, c.loggerProvider, gates)
	if err != nil {
		return err
	}
	c.handlers = handlers
	return nil
}

func (c *Container) corpusFactory() postscmd.CorpusFactory {
	return func(cfg store.Config) (postscmd.Corpus, error) {
		svc, err := markdown.NewService(markdown.Config{
			BasePath:  cfg.Directory,
			Pattern:   cfg.Pattern,
			Recursive: cfg.Recursive,
			Parser:    c.parseOptions(),
		}, c.parser)
		if err != nil {
			return nil, err
		}
		return store.New(svc, store.Config{
			Pattern:   cfg.Pattern,
			Recursive: cfg.Recursive,
			Validate:  c.schemaValidator(),
		}, logging.StoreLogger(c.loggerProvider)), nil
	}
}

func (c *Container) parseOptions() interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Extensions: c.Config.Parser.Extensions,
		Sanitize:   c.Config.Parser.Sanitize,
		HardWraps:  c.Config.Parser.HardWraps,
		SafeMode:   c.Config.Parser.SafeMode,
	}
}

// LoggerProvider returns the configured logger provider, which may be nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Parser returns the configured markdown parser.
func (c *Container) Parser() interfaces.MarkdownParser {
	return c.parser
}

// MarkdownService returns the document service rooted at the content directory.
func (c *Container) MarkdownService() *markdown.Service {
	return c.markdownSvc
}

// StoreService returns the document store over the content directory.
func (c *Container) StoreService() *store.Store {
	return c.storeSvc
}

// ArchiveRepository returns the archive repository when the archive is enabled.
func (c *Container) ArchiveRepository() *archive.BunPostRepository {
	return c.archiveRepo
}

// Archiver returns the archiver when the archive is enabled.
func (c *Container) Archiver() *archive.Archiver {
	return c.archiver
}

// PermalinkResolver returns the permalink resolver. Without route
// configuration resolution is a silent no-op.
func (c *Container) PermalinkResolver() *permalinks.Resolver {
	return c.resolver
}

// CommandHandlers returns the command handler set when commands are enabled.
func (c *Container) CommandHandlers() *postscmd.HandlerSet {
	return c.handlers
}

// DB exposes the archive database handle for advanced integrations.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// RouteManager exposes the urlkit route manager used for permalinks.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

// Close releases resources owned by the container. Database handles supplied
// through WithBunDB stay open.
func (c *Container) Close() error {
	if c.ownsDB && c.bunDB != nil {
		err := c.bunDB.Close()
		c.bunDB = nil
		c.ownsDB = false
		return err
	}
	return nil
}
