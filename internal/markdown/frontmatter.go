package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

// requiredFields are the header fields every document must carry.
var requiredFields = []string{"title", "date", "draft"}

// ParseFrontMatter extracts metadata and body content from the provided
// source bytes. It returns the structured frontmatter, the body without
// delimiters, and any error encountered. The body is the exact byte sequence
// following the closing delimiter line.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.MustParse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}

	raw := map[string]any{}
	if _, err := frontmatter.MustParse(bytes.NewReader(source), &raw); err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}

	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			return interfaces.FrontMatter{}, nil, &MissingRequiredFieldError{Field: field}
		}
	}

	fm, err := envelopeToFrontMatter(meta, raw)
	if err != nil {
		return interfaces.FrontMatter{}, nil, err
	}
	return fm, body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time. BodyHTML is intentionally left empty so
// callers can render lazily.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		FrontMatter:  fm,
		Body:         body,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Title        string         `yaml:"title"`
	Slug         string         `yaml:"slug"`
	Summary      string         `yaml:"summary"`
	Tags         []string       `yaml:"tags"`
	Images       []string       `yaml:"images"`
	Authors      []string       `yaml:"authors"`
	Layout       string         `yaml:"layout"`
	CanonicalURL string         `yaml:"canonicalUrl"`
	Date         any            `yaml:"date"`
	Lastmod      any            `yaml:"lastmod"`
	Draft        bool           `yaml:"draft"`
	Custom       map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope, raw map[string]any) (interfaces.FrontMatter, error) {
	date, err := coerceDate(env.Date)
	if err != nil {
		return interfaces.FrontMatter{}, fmt.Errorf("%w: date: %v", ErrMalformedHeader, err)
	}
	lastmod, err := coerceDate(env.Lastmod)
	if err != nil {
		return interfaces.FrontMatter{}, fmt.Errorf("%w: lastmod: %v", ErrMalformedHeader, err)
	}

	return interfaces.FrontMatter{
		Title:        env.Title,
		Slug:         env.Slug,
		Summary:      env.Summary,
		Tags:         append([]string(nil), env.Tags...),
		Images:       append([]string(nil), env.Images...),
		Authors:      append([]string(nil), env.Authors...),
		Layout:       env.Layout,
		CanonicalURL: env.CanonicalURL,
		Date:         date,
		Lastmod:      lastmod,
		Draft:        env.Draft,
		Custom:       cloneMap(env.Custom),
		Raw:          cloneMap(raw),
	}, nil
}

// dateLayouts lists accepted header date formats, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// coerceDate accepts the representations YAML produces for date values:
// a time.Time when the scalar is an unquoted timestamp, or a string when
// the author quoted it.
func coerceDate(value any) (time.Time, error) {
	switch typed := value.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return typed, nil
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, typed); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date value %q", typed)
	default:
		return time.Time{}, fmt.Errorf("unrecognized date value %v", value)
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
