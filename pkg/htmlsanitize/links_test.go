package htmlsanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/miscutils/pkg/htmlsanitize"
)

func TestProtectLinks(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		policy       htmlsanitize.LinkPolicy
		contains     []string
		notContains  []string
		wantReplaced int
	}{
		{
			name:        "relative link loses rel",
			input:       `<a href="/local/path" rel="nofollow">local</a>`,
			contains:    []string{`<a href="/local/path">local</a>`},
			notContains: []string{"rel="},
		},
		{
			name:     "relative link made absolute",
			input:    `<a href="/docs/page?x=1#top" rel="nofollow">docs</a>`,
			policy:   htmlsanitize.LinkPolicy{AbsoluteDomain: "example.com"},
			contains: []string{`<a href="https://example.com/docs/page?x=1#top">docs</a>`},
		},
		{
			name:     "anchor without href is relative",
			input:    `<a name="top" rel="nofollow">top</a>`,
			contains: []string{`<a name="top">top</a>`},
		},
		{
			name:        "whitelisted host loses rel",
			input:       `<a href="https://Docs.Example.com:8443/x" rel="nofollow" target="_blank">docs</a>`,
			policy:      htmlsanitize.LinkPolicy{WhitelistDomains: []string{"docs.example.com"}},
			contains:    []string{`href="https://Docs.Example.com:8443/x"`, `target="_blank"`},
			notContains: []string{"rel="},
		},
		{
			name:     "whitelisted host is not rewritten",
			input:    `<a href="https://docs.example.com/x">docs</a>`,
			policy:   htmlsanitize.LinkPolicy{WhitelistDomains: []string{"docs.example.com"}, AbsoluteDomain: "example.com"},
			contains: []string{`href="https://docs.example.com/x"`},
		},
		{
			name:     "external link kept without protection",
			input:    `<a href="https://other.example/x" rel="nofollow">other</a>`,
			contains: []string{`<a href="https://other.example/x" rel="nofollow">other</a>`},
		},
		{
			name:         "external link removed with protection",
			input:        `<p>see <a href="https://evil.example/x">click</a> now</p>`,
			policy:       htmlsanitize.LinkPolicy{Protection: true},
			contains:     []string{`<p>see [link removed] now</p>`},
			notContains:  []string{"evil.example", "click"},
			wantReplaced: 1,
		},
		{
			name:         "protocol relative link is external",
			input:        `<a href="//evil.example/x">x</a>`,
			policy:       htmlsanitize.LinkPolicy{Protection: true},
			contains:     []string{"[link removed]"},
			wantReplaced: 1,
		},
		{
			name:         "mailto link is external",
			input:        `<a href="mailto:someone@example.com">mail</a>`,
			policy:       htmlsanitize.LinkPolicy{Protection: true, AbsoluteDomain: "example.com"},
			contains:     []string{"[link removed]"},
			wantReplaced: 1,
		},
		{
			name:        "relative link survives protection",
			input:       `<a href="/local" rel="nofollow">local</a>`,
			policy:      htmlsanitize.LinkPolicy{Protection: true},
			contains:    []string{`<a href="/local">local</a>`},
			notContains: []string{"[link removed]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, "<body>"+tt.input+"</body>")
			replaced := htmlsanitize.ProtectLinks(doc, tt.policy)
			assert.Equal(t, tt.wantReplaced, replaced)

			out := render(t, doc)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestProtectLinks_Nil(t *testing.T) {
	assert.Zero(t, htmlsanitize.ProtectLinks(nil, htmlsanitize.LinkPolicy{Protection: true}))
}
