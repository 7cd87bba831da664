package htmlsanitize

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"mvdan.cc/xurls/v2"
)

var urlPattern = xurls.Relaxed()

// linkifySkip lists elements whose text is never turned into links.
var linkifySkip = map[atom.Atom]bool{
	atom.A:        true,
	atom.Pre:      true,
	atom.Code:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Textarea: true,
	atom.Title:    true,
}

// Linkify wraps plain-text http(s) URLs and bare domains found in the tree
// rooted at root in anchors marked nofollow and opened in a new tab. Text
// inside a, pre, code and raw-text elements is left alone. Bare domains get
// an http:// href. It returns the number of anchors created.
func Linkify(root *html.Node) int {
	if root == nil {
		return 0
	}

	var texts []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && linkifySkip[n.DataAtom] {
			return
		}
		if n.Type == html.TextNode {
			texts = append(texts, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	created := 0
	for _, t := range texts {
		created += linkifyText(t)
	}
	return created
}

func linkifyText(t *html.Node) int {
	if t.Parent == nil {
		return 0
	}

	var nodes []*html.Node
	last, anchors := 0, 0
	for _, loc := range urlPattern.FindAllStringIndex(t.Data, -1) {
		match := t.Data[loc[0]:loc[1]]
		href, ok := linkHref(match)
		if !ok {
			continue
		}
		if loc[0] > last {
			nodes = append(nodes, &html.Node{Type: html.TextNode, Data: t.Data[last:loc[0]]})
		}
		a := &html.Node{
			Type:     html.ElementNode,
			Data:     atom.A.String(),
			DataAtom: atom.A,
			Attr: []html.Attribute{
				{Key: "href", Val: href},
				{Key: "rel", Val: "nofollow noopener"},
				{Key: "target", Val: "_blank"},
			},
		}
		a.AppendChild(&html.Node{Type: html.TextNode, Data: match})
		nodes = append(nodes, a)
		last = loc[1]
		anchors++
	}
	if anchors == 0 {
		return 0
	}
	if last < len(t.Data) {
		nodes = append(nodes, &html.Node{Type: html.TextNode, Data: t.Data[last:]})
	}

	for _, n := range nodes {
		t.Parent.InsertBefore(n, t)
	}
	t.Parent.RemoveChild(t)
	return anchors
}

// linkHref returns the href for a matched URL. Only http and https URLs and
// bare domains qualify; email addresses and other schemes are skipped.
func linkHref(match string) (string, bool) {
	lower := strings.ToLower(match)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return match, true
	case strings.Contains(match, ":"), strings.Contains(match, "@"):
		return "", false
	}
	return "http://" + match, true
}
