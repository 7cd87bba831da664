package htmlsanitize

import (
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dmitrymomot/miscutils/pkg/logger"
)

type config struct {
	acl            TagACL
	denyMode       DenyMode
	linkProtection bool
	whitelist      []string
	absoluteDomain string
	logger         *slog.Logger
}

// Option configures a Cleaner.
type Option func(*config)

// WithTagACL registers the conditional tag rules. The ACL is copied, later
// changes to acl do not affect the Cleaner.
func WithTagACL(acl TagACL) Option {
	return func(c *config) { c.acl = acl.Clone() }
}

// WithDenyMode selects how deny rules are evaluated. Default is DenyAsOmission.
func WithDenyMode(m DenyMode) Option {
	return func(c *config) { c.denyMode = m }
}

// WithLinkProtection replaces anchors to non-whitelisted hosts with
// LinkRemovedText instead of marking them nofollow.
func WithLinkProtection(enabled bool) Option {
	return func(c *config) { c.linkProtection = enabled }
}

// WithWhitelistDomains adds hosts whose links are treated like relative links.
// Empty entries are ignored; relative links are always whitelisted.
func WithWhitelistDomains(domains ...string) Option {
	return func(c *config) {
		for _, d := range domains {
			if d = strings.TrimSpace(d); d != "" {
				c.whitelist = append(c.whitelist, d)
			}
		}
	}
}

// WithAbsoluteDomain makes relative links absolute https links on domain.
func WithAbsoluteDomain(domain string) Option {
	return func(c *config) { c.absoluteDomain = strings.TrimSpace(domain) }
}

// WithLogger sets the logger used for debug output. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Cleaner sanitizes untrusted HTML. It is immutable once built and safe for
// concurrent use.
type Cleaner struct {
	acl      TagACL
	denyMode DenyMode
	links    LinkPolicy
	policy   *bluemonday.Policy
	logger   *slog.Logger
}

// NewCleaner builds a Cleaner from the given options.
func NewCleaner(opts ...Option) *Cleaner {
	cfg := &config{
		acl:    TagACL{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Cleaner{
		acl:      cfg.acl,
		denyMode: cfg.denyMode,
		links: LinkPolicy{
			Protection:       cfg.linkProtection,
			WhitelistDomains: slices.Clone(cfg.whitelist),
			AbsoluteDomain:   cfg.absoluteDomain,
		},
		policy: basePolicy(cfg.acl, cfg.linkProtection),
		logger: cfg.logger.With(logger.Component("htmlsanitize")),
	}
}

// DefaultCleaner returns a Cleaner with an empty tag ACL and link protection
// disabled.
func DefaultCleaner() *Cleaner {
	return NewCleaner()
}

// TagACL returns a copy of the cleaner's tag rules.
func (c *Cleaner) TagACL() TagACL {
	return c.acl.Clone()
}

// LinkPolicy returns the cleaner's link settings.
func (c *Cleaner) LinkPolicy() LinkPolicy {
	p := c.links
	p.WhitelistDomains = slices.Clone(p.WhitelistDomains)
	return p
}

// Clean runs raw through the base allow-list, removes tags the ACL does not
// permit and applies link protection. Without link protection, plain-text
// URLs are turned into nofollow links first.
func (c *Cleaner) Clean(raw string) (string, error) {
	pre := c.policy.Sanitize(raw)

	root, err := parseFragment(pre)
	if err != nil {
		return "", errors.Join(ErrParseHTML, err)
	}

	removed := FilterTags(root, c.acl, c.denyMode)
	linked := 0
	if !c.links.Protection {
		linked = Linkify(root)
	}
	replaced := ProtectLinks(root, c.links)

	var b strings.Builder
	if err := html.Render(&b, root); err != nil {
		return "", errors.Join(ErrRenderHTML, err)
	}

	if removed > 0 || replaced > 0 || linked > 0 {
		c.logger.Debug("html cleaned",
			slog.Int("tags_removed", removed),
			slog.Int("links_created", linked),
			slog.Int("links_removed", replaced),
		)
	}
	return b.String(), nil
}

// CleanRawHTML sanitizes raw with c, or with DefaultCleaner when c is nil.
func CleanRawHTML(raw string, c *Cleaner) (string, error) {
	if c == nil {
		c = DefaultCleaner()
	}
	return c.Clean(raw)
}

// parseFragment parses s in a <body> context and hangs the result off a
// document node so removals at the top level have a parent to work with.
func parseFragment(s string) (*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: atom.Body.String(), DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return nil, err
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}
