// Package markdown provides front-matter parsing, serialization, filesystem
// discovery, and HTML rendering for MDX/markdown content documents. The
// parser splits the delimited YAML header from the body and enforces the
// required title, date, and draft fields; everything else in the header is
// preserved opaquely.
package markdown
