package htmlsanitize

import (
	"net/url"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LinkRemovedText replaces anchors pointing outside the whitelist when link
// protection is enabled.
const LinkRemovedText = "[link removed]"

// LinkPolicy configures ProtectLinks.
type LinkPolicy struct {
	// Protection replaces anchors to non-whitelisted hosts with LinkRemovedText.
	Protection bool
	// WhitelistDomains lists hosts treated like relative links.
	// Relative links are always whitelisted.
	WhitelistDomains []string
	// AbsoluteDomain, when set, turns relative links into https links on
	// this host.
	AbsoluteDomain string
}

func (p LinkPolicy) whitelisted(host string) bool {
	return slices.ContainsFunc(p.WhitelistDomains, func(d string) bool {
		return strings.EqualFold(d, host)
	})
}

// ProtectLinks rewrites the anchors of the tree rooted at root according to p.
// Anchors to relative or whitelisted targets lose their rel attribute.
// It returns the number of anchors replaced by LinkRemovedText.
func ProtectLinks(root *html.Node, p LinkPolicy) int {
	if root == nil {
		return 0
	}

	replaced := 0
	for _, a := range findAll(root, atom.A.String()) {
		href, _ := attr(a, "href")
		u, err := url.Parse(strings.TrimSpace(href))
		relative := err == nil && u.Scheme == "" && u.Host == ""

		switch {
		case relative:
			removeAttr(a, "rel")
			if p.AbsoluteDomain != "" {
				u.Scheme = "https"
				u.Host = p.AbsoluteDomain
				setAttr(a, "href", u.String())
			}
		case err == nil && u.Host != "" && p.whitelisted(u.Hostname()):
			removeAttr(a, "rel")
		case p.Protection:
			if a.Parent != nil {
				a.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: LinkRemovedText}, a)
				a.Parent.RemoveChild(a)
				replaced++
			}
		}
	}
	return replaced
}
