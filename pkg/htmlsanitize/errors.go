package htmlsanitize

import "errors"

var (
	// ErrParseHTML is returned when the base-sanitized HTML cannot be parsed into a tree.
	ErrParseHTML = errors.New("failed to parse sanitized html")

	// ErrRenderHTML is returned when the filtered tree cannot be serialized.
	ErrRenderHTML = errors.New("failed to render sanitized html")

	// ErrRenderMarkdown is returned when markdown cannot be converted to html.
	ErrRenderMarkdown = errors.New("failed to render markdown")

	// ErrLoadACL is returned when a tag ACL file cannot be read or decoded.
	ErrLoadACL = errors.New("failed to load tag acl")
)
