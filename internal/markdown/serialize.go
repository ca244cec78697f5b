package markdown

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

const headerDelimiter = "---"

// MarshalFrontMatter re-serializes the recognized header fields (plus any
// preserved custom fields) into a delimited header block followed by the
// body. Parsing the output yields a record equal to the input, which is the
// round-trip guarantee callers rely on.
func MarshalFrontMatter(fm interfaces.FrontMatter, body []byte) ([]byte, error) {
	header := &yaml.Node{Kind: yaml.MappingNode}

	if err := appendEntry(header, "title", fm.Title); err != nil {
		return nil, err
	}
	if err := appendEntry(header, "date", formatDate(fm.Date)); err != nil {
		return nil, err
	}
	if !fm.Lastmod.IsZero() {
		if err := appendEntry(header, "lastmod", formatDate(fm.Lastmod)); err != nil {
			return nil, err
		}
	}
	if len(fm.Tags) > 0 {
		if err := appendEntry(header, "tags", fm.Tags); err != nil {
			return nil, err
		}
	}
	if err := appendEntry(header, "draft", fm.Draft); err != nil {
		return nil, err
	}
	if fm.Summary != "" {
		if err := appendEntry(header, "summary", fm.Summary); err != nil {
			return nil, err
		}
	}
	if len(fm.Images) > 0 {
		if err := appendEntry(header, "images", fm.Images); err != nil {
			return nil, err
		}
	}
	if len(fm.Authors) > 0 {
		if err := appendEntry(header, "authors", fm.Authors); err != nil {
			return nil, err
		}
	}
	if fm.Slug != "" {
		if err := appendEntry(header, "slug", fm.Slug); err != nil {
			return nil, err
		}
	}
	if fm.Layout != "" {
		if err := appendEntry(header, "layout", fm.Layout); err != nil {
			return nil, err
		}
	}
	if fm.CanonicalURL != "" {
		if err := appendEntry(header, "canonicalUrl", fm.CanonicalURL); err != nil {
			return nil, err
		}
	}

	for _, key := range sortedKeys(fm.Custom) {
		if err := appendEntry(header, key, fm.Custom[key]); err != nil {
			return nil, err
		}
	}

	encoded, err := yaml.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("frontmatter: marshal header: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(headerDelimiter)
	buf.WriteByte('\n')
	buf.Write(encoded)
	buf.WriteString(headerDelimiter)
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes(), nil
}

func appendEntry(mapping *yaml.Node, key string, value any) error {
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}

	valueNode := &yaml.Node{}
	if err := valueNode.Encode(value); err != nil {
		return fmt.Errorf("frontmatter: encode header field %s: %w", key, err)
	}

	mapping.Content = append(mapping.Content, keyNode, valueNode)
	return nil
}

// formatDate emits date-only output for midnight UTC values and RFC 3339
// otherwise, so timestamps survive serialization without gaining precision.
func formatDate(t time.Time) string {
	if t.Equal(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)) {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

func sortedKeys(input map[string]any) []string {
	if len(input) == 0 {
		return nil
	}
	keys := make([]string, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
