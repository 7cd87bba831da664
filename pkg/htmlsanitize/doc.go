// Package htmlsanitize cleans untrusted HTML and markdown-rendered HTML.
//
// A Cleaner runs these passes over its input:
//
//  1. A static allow-list sanitizer (github.com/microcosm-cc/bluemonday)
//     drops every tag and attribute outside the markdown allow-list, the
//     MaybeSafeTags and the tags named in the Cleaner's TagACL.
//  2. The result is parsed with golang.org/x/net/html and FilterTags removes
//     each instance of an ACL-governed tag that no allow rule matches.
//  3. Without link protection, Linkify turns plain-text URLs into nofollow
//     links.
//  4. ProtectLinks strips rel from relative and whitelisted anchors, makes
//     relative links absolute when an absolute domain is configured, and, with
//     link protection enabled, replaces all other anchors with
//     "[link removed]".
//
// # Tag ACL
//
// A TagACL maps a tag name to an ordered list of rules. A rule matches when
// the tag carries the named attribute with exactly the given value:
//
//	acl := htmlsanitize.TagACL{
//	    "script": {
//	        htmlsanitize.AllowRule("type", "math/tex; mode=display"),
//	        htmlsanitize.DenyRule("type", "text/javascript"),
//	    },
//	}
//
// The first matching allow rule keeps the tag. Tags with no matching allow
// rule, including tags with an empty rule list, are removed with their
// content. Tags not named in the ACL are left alone. Deny rules are
// informational by default; WithDenyMode(DenyShortCircuit) makes the first
// matching rule decide instead.
//
// ACLs can be loaded from YAML with LoadACL and LoadACLFile:
//
//	script:
//	  - {attr: type, value: "math/tex; mode=display", decision: allow}
//	  - [type, math/tex]
//
// # Usage
//
//	c := htmlsanitize.NewCleaner(
//	    htmlsanitize.WithTagACL(acl),
//	    htmlsanitize.WithWhitelistDomains("example.com"),
//	    htmlsanitize.WithAbsoluteDomain("example.com"),
//	)
//	safe, err := c.CleanMarkdown(userInput)
//
// A Cleaner is immutable and safe for concurrent use.
package htmlsanitize
