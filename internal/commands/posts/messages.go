package postscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	validateDirectoryMessageType = "posts.store.validate_directory"
	archiveDirectoryMessageType  = "posts.archive.sync_directory"
)

// ValidateDirectoryCommand scans a directory of documents and reports the
// ones whose front matter cannot be parsed. Listings, header requirements,
// and pattern handling mirror the store's reload semantics.
type ValidateDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load documents from.
	Directory string `json:"directory"`
	// Pattern overrides the default filename filter applied during discovery.
	Pattern string `json:"pattern,omitempty"`
	// Recursive walks nested directories when true.
	Recursive bool `json:"recursive,omitempty"`
	// Strict fails the command when any document is rejected instead of just reporting.
	Strict bool `json:"strict,omitempty"`
}

// Type implements command.Message.
func (ValidateDirectoryCommand) Type() string { return validateDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ValidateDirectoryCommand) Validate() error {
	err := validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("posts.store.validate_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
	if err != nil {
		return err
	}
	return nil
}

// ArchiveDirectoryCommand reloads a directory of documents and mirrors the
// published view into the archive repository.
type ArchiveDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load documents from.
	Directory string `json:"directory"`
	// Pattern overrides the default filename filter applied during discovery.
	Pattern string `json:"pattern,omitempty"`
	// Recursive walks nested directories when true.
	Recursive bool `json:"recursive,omitempty"`
	// Prune removes archive records without a matching published document.
	Prune bool `json:"prune,omitempty"`
}

// Type implements command.Message.
func (ArchiveDirectoryCommand) Type() string { return archiveDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ArchiveDirectoryCommand) Validate() error {
	err := validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("posts.archive.sync_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
	if err != nil {
		return err
	}
	return nil
}
