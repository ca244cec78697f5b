package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// DocumentUUID derives the stable identity of a document from its file path,
// which is unique within a store.
func DocumentUUID(path string) uuid.UUID {
	return UUID("go-posts:document:" + strings.TrimSpace(path))
}

// TagUUID derives the stable identity of a tag label.
func TagUUID(tag string) uuid.UUID {
	return UUID("go-posts:tag:" + strings.ToLower(strings.TrimSpace(tag)))
}
