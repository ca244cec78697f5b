package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrContentDirRequired indicates the content directory is missing.
var ErrContentDirRequired = errors.New("posts config: content directory is required")

// ErrArchiveFeatureRequired indicates inconsistent archive configuration.
var ErrArchiveFeatureRequired = errors.New("posts config: archive feature must be enabled to configure the archive")

// ErrArchiveDSNRequired ensures the archive has a database to write to.
var ErrArchiveDSNRequired = errors.New("posts config: archive DSN is required when the archive is enabled")

// ErrCommandsCronRequiresCommands ensures automatic cron wiring only runs when commands are enabled.
var ErrCommandsCronRequiresCommands = errors.New("posts config: command cron auto-registration requires commands to be enabled")
var ErrCacheTTLInvalid = errors.New("posts config: cache TTL must be zero or positive")
var ErrLoggingProviderRequired = errors.New("posts config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("posts config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("posts config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("posts config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the posts module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled    bool
	Content    ContentConfig
	Parser     ParserConfig
	Cache      CacheConfig
	Archive    ArchiveConfig
	Permalinks PermalinkConfig
	Commands   CommandsConfig
	Features   Features
	Logging    LoggingConfig
}

// ContentConfig captures filesystem behaviour for document discovery.
type ContentConfig struct {
	Dir       string
	Pattern   string
	Recursive bool
}

// ParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type ParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// CacheConfig captures cache behaviour for archive repository reads.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// ArchiveConfig captures database bindings for the published-view archive.
type ArchiveConfig struct {
	Enabled bool
	Driver  string
	DSN     string
	Prune   bool
}

// PermalinkConfig captures routing configuration for post and tag URL resolution.
type PermalinkConfig struct {
	RouteConfig *urlkit.Config
	Group       string
	PostRoute   string
	TagRoute    string
	SlugParam   string
	TagParam    string
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled          bool
	AutoRegisterCron bool
	ArchiveCron      string
}

// Features toggles module functionality.
type Features struct {
	Store    bool
	Archive  bool
	Commands bool
	Schema   bool
	Logger   bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a filesystem-backed corpus.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Content: ContentConfig{
			Dir:       "content",
			Pattern:   "*.mdx",
			Recursive: true,
		},
		Parser: ParserConfig{},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Archive: ArchiveConfig{
			Driver: "sqlite3",
			DSN:    "file:posts.db?cache=shared&_fk=1",
		},
		Permalinks: PermalinkConfig{
			Group:     "site",
			PostRoute: "post",
			TagRoute:  "tag",
			SlugParam: "slug",
			TagParam:  "tag",
		},
		Commands: CommandsConfig{},
		Features: Features{
			Store: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Enabled && strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if cfg.Archive.Enabled {
		if !cfg.Features.Archive {
			return ErrArchiveFeatureRequired
		}
		if strings.TrimSpace(cfg.Archive.DSN) == "" {
			return ErrArchiveDSNRequired
		}
	}
	if cfg.Commands.AutoRegisterCron && !cfg.Commands.Enabled {
		return ErrCommandsCronRequiresCommands
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
