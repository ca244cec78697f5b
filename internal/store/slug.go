package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

// ErrSlugCollision reports that two documents resolved to the same slug and
// the later one was reassigned.
var ErrSlugCollision = errors.New("store: slug collision")

// SlugNormalizer exposes the slug normalizer interface.
type SlugNormalizer = slug.Normalizer

// DefaultSlugNormalizer returns the default slug normalizer.
func DefaultSlugNormalizer() SlugNormalizer {
	return slug.Default()
}

// NormalizeSlug applies the default slug normalization rules.
func NormalizeSlug(value string) (string, error) {
	return slug.Normalize(value)
}

// IsValidSlug reports whether the slug matches the default rules.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}

// slugFor resolves a document's slug: an explicit header slug wins, then a
// normalized title, then the file name stem.
func slugFor(doc *interfaces.Document) string {
	if doc == nil {
		return ""
	}
	if explicit := strings.TrimSpace(doc.FrontMatter.Slug); explicit != "" {
		return explicit
	}
	if normalized, err := NormalizeSlug(doc.FrontMatter.Title); err == nil && normalized != "" {
		return normalized
	}
	base := filepath.Base(doc.FilePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// disambiguateSlug derives a unique slug for a colliding document: the file
// name stem is appended first, then a numeric suffix when the stem does not
// help. taken maps already-assigned slugs to their document paths.
func disambiguateSlug(base, path string, taken map[string]string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if normalized, err := NormalizeSlug(stem); err == nil && normalized != "" {
		stem = normalized
	}
	if stem != "" && stem != base {
		candidate := base + "-" + stem
		if _, exists := taken[candidate]; !exists {
			return candidate
		}
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, exists := taken[candidate]; !exists {
			return candidate
		}
	}
}
