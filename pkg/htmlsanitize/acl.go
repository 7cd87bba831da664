package htmlsanitize

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Decision is the outcome a Rule assigns to a matching tag.
type Decision string

const (
	// Allow keeps the tag.
	Allow Decision = "allow"
	// Deny marks the tag as unwanted. How it takes part in evaluation
	// depends on the DenyMode.
	Deny Decision = "deny"
)

// ParseDecision converts s to a Decision, case-insensitively.
// An empty string means Allow.
func ParseDecision(s string) (Decision, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Allow):
		return Allow, true
	case string(Deny):
		return Deny, true
	}
	return Decision(s), false
}

// Rule matches a tag whose attribute Attr has exactly the value Value.
type Rule struct {
	Attr     string   `yaml:"attr"`
	Value    string   `yaml:"value"`
	Decision Decision `yaml:"decision"`
}

// AllowRule is shorthand for Rule{attr, value, Allow}.
func AllowRule(attr, value string) Rule {
	return Rule{Attr: attr, Value: value, Decision: Allow}
}

// DenyRule is shorthand for Rule{attr, value, Deny}.
func DenyRule(attr, value string) Rule {
	return Rule{Attr: attr, Value: value, Decision: Deny}
}

// Matches reports whether n carries the rule's attribute with the rule's value.
// A missing attribute never matches.
func (r Rule) Matches(n *html.Node) bool {
	v, ok := attr(n, r.Attr)
	return ok && v == r.Value
}

// TagACL maps a tag name to the ordered rules that decide whether an
// instance of that tag survives sanitization.
type TagACL map[string][]Rule

// Clone returns a deep copy of the ACL.
func (acl TagACL) Clone() TagACL {
	if acl == nil {
		return TagACL{}
	}
	out := make(TagACL, len(acl))
	for tag, rules := range acl {
		out[tag] = slices.Clone(rules)
	}
	return out
}

// Tags returns the tag names governed by the ACL in sorted order.
func (acl TagACL) Tags() []string {
	return slices.Sorted(maps.Keys(acl))
}

// Attrs returns the distinct attribute names referenced by the rules of tag.
func (acl TagACL) Attrs(tag string) []string {
	var names []string
	for _, r := range acl[tag] {
		if r.Attr != "" && !slices.Contains(names, r.Attr) {
			names = append(names, r.Attr)
		}
	}
	return names
}

// DenyMode controls how deny rules take part in evaluation.
type DenyMode int

const (
	// DenyAsOmission ignores deny rules: a node survives only when an allow
	// rule matches it, wherever deny rules appear in the list.
	DenyAsOmission DenyMode = iota
	// DenyShortCircuit lets the first matching rule decide, so a deny rule
	// listed before a matching allow rule removes the node.
	DenyShortCircuit
)

// Permits reports whether n is kept under the rules registered for its tag.
// Tags without an entry in the ACL are always permitted.
func (acl TagACL) Permits(n *html.Node, mode DenyMode) bool {
	rules, ok := acl[n.Data]
	if !ok {
		return true
	}
	for _, r := range rules {
		if !r.Matches(n) {
			continue
		}
		switch r.Decision {
		case Allow:
			return true
		case Deny:
			if mode == DenyShortCircuit {
				return false
			}
		}
	}
	return false
}

// FilterTags removes from the tree rooted at root every element governed by
// acl that no allow rule permits. Removed elements take their children with
// them. It returns the number of elements detached from the tree; elements
// nested in a removed one are not counted.
func FilterTags(root *html.Node, acl TagACL, mode DenyMode) int {
	if root == nil || len(acl) == 0 {
		return 0
	}

	removed := 0
	for _, tag := range acl.Tags() {
		// Matches are collected before any removal so siblings are not skipped.
		for _, n := range findAll(root, tag) {
			// Nodes inside an already removed subtree are gone with it.
			if !attached(n, root) || acl.Permits(n, mode) {
				continue
			}
			n.Parent.RemoveChild(n)
			removed++
		}
	}
	return removed
}

// attached reports whether n is still reachable from root.
func attached(n, root *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

func findAll(root *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func removeAttr(n *html.Node, key string) bool {
	before := len(n.Attr)
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
	return len(n.Attr) != before
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
