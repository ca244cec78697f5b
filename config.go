package posts

import "github.com/goliatone/go-posts/internal/runtimeconfig"

var (
	ErrContentDirRequired           = runtimeconfig.ErrContentDirRequired
	ErrArchiveFeatureRequired       = runtimeconfig.ErrArchiveFeatureRequired
	ErrArchiveDSNRequired           = runtimeconfig.ErrArchiveDSNRequired
	ErrCommandsCronRequiresCommands = runtimeconfig.ErrCommandsCronRequiresCommands
	ErrCacheTTLInvalid              = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingProviderRequired      = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown       = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid          = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid         = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	ContentConfig   = runtimeconfig.ContentConfig
	ParserConfig    = runtimeconfig.ParserConfig
	CacheConfig     = runtimeconfig.CacheConfig
	ArchiveConfig   = runtimeconfig.ArchiveConfig
	PermalinkConfig = runtimeconfig.PermalinkConfig
	CommandsConfig  = runtimeconfig.CommandsConfig
	Features        = runtimeconfig.Features
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
