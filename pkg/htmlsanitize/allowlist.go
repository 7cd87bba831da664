package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// MarkdownTags are the elements markdown renderers produce.
var MarkdownTags = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"b", "i", "strong", "em", "tt",
	"p", "br",
	"span", "div", "blockquote", "code", "hr",
	"ul", "ol", "li", "dd", "dt",
	"img", "a",
	"sub", "sup",
}

// MaybeSafeTags are allowed on top of MarkdownTags.
var MaybeSafeTags = []string{"pre", "table", "tr", "td"}

// MarkdownAttrs lists the attributes allowed per element; "*" applies to all.
var MarkdownAttrs = map[string][]string{
	"*":    {"id"},
	"img":  {"src", "alt", "title", "width"},
	"a":    {"href", "alt", "title"},
	"span": {"class"},
}

// AllowedStyles are the CSS properties kept inside style attributes.
var AllowedStyles = []string{
	"azimuth", "background-color",
	"border-bottom-color", "border-collapse", "border-color",
	"border-left-color", "border-right-color", "border-top-color",
	"clear", "color", "cursor", "direction", "display", "elevation", "float",
	"font", "font-family", "font-size", "font-style", "font-variant", "font-weight",
	"height", "letter-spacing", "line-height", "overflow",
	"pause", "pause-after", "pause-before", "pitch", "pitch-range", "richness",
	"speak", "speak-header", "speak-numeral", "speak-punctuation", "speech-rate",
	"stress", "text-align", "text-decoration", "text-indent", "unicode-bidi",
	"vertical-align", "voice-family", "volume", "white-space", "width",
}

// rawTextTags are dropped by bluemonday unless unsafe elements are enabled.
var rawTextTags = map[string]bool{"script": true, "style": true}

// basePolicy builds the static allow-list sanitizer that runs before the
// conditional filter. Every tag governed by acl is allowed along with the
// attributes its rules inspect.
func basePolicy(acl TagACL, linkProtection bool) *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(MarkdownTags...)
	p.AllowElements(MaybeSafeTags...)
	for el, attrs := range MarkdownAttrs {
		if el == "*" {
			p.AllowAttrs(attrs...).Globally()
			continue
		}
		p.AllowAttrs(attrs...).OnElements(el)
	}
	p.AllowStyles(AllowedStyles...).Globally()

	unsafe := false
	for _, tag := range acl.Tags() {
		// Governed tags always reach the filter intact, with or without
		// attributes; otherwise bluemonday could drop a script tag and
		// leave its raw text behind.
		p.AllowElements(tag)
		p.AllowNoAttrs().OnElements(tag)
		if names := acl.Attrs(tag); len(names) > 0 {
			p.AllowAttrs(names...).OnElements(tag)
		}
		if rawTextTags[tag] {
			unsafe = true
		}
	}
	p.AllowUnsafe(unsafe)

	p.AllowRelativeURLs(true)
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)

	if !linkProtection {
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
	}
	return p
}
