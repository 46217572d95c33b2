package seo

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StructuredDataScriptID is the id of the injected ld+json script element.
const StructuredDataScriptID = "recipe-structured-data"

// headTarget is one head element the templater rewrites. Only the first
// element matching attr=value is changed.
type headTarget struct {
	attr  string
	value string
	text  func(MetaTags) string
}

var metaTargets = []headTarget{
	{"name", "description", func(m MetaTags) string { return m.Description }},
	{"name", "keywords", func(m MetaTags) string { return m.Keywords }},
	{"property", "og:title", func(m MetaTags) string { return m.OGTitle }},
	{"property", "og:description", func(m MetaTags) string { return m.OGDescription }},
	{"property", "og:image", func(m MetaTags) string { return m.OGImage }},
	{"property", "og:url", func(m MetaTags) string { return m.OGURL }},
	{"name", "twitter:title", func(m MetaTags) string { return m.TwitterTitle }},
	{"name", "twitter:description", func(m MetaTags) string { return m.TwitterDescription }},
	{"name", "twitter:image", func(m MetaTags) string { return m.TwitterImage }},
}

// Render rewrites base so its title and known meta tags carry meta, and
// appends data as an ld+json script at the end of <head>. Tags missing from
// base are left alone; that is not an error.
func Render(base []byte, meta MetaTags, data StructuredData) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(base))
	if err != nil {
		return nil, fmt.Errorf("parse base page: %w", err)
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode structured data: %w", err)
	}

	var (
		head      *html.Node
		titleDone bool
		done      = make([]bool, len(metaTargets))
	)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Head:
				if head == nil {
					head = n
				}
			case atom.Title:
				if !titleDone {
					setText(n, meta.Title)
					titleDone = true
				}
			case atom.Meta:
				for i, t := range metaTargets {
					if !done[i] && attrValue(n, t.attr) == t.value {
						setAttr(n, "content", t.text(meta))
						done[i] = true
						break
					}
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if head != nil {
		script := &html.Node{
			Type:     html.ElementNode,
			Data:     "script",
			DataAtom: atom.Script,
			Attr: []html.Attribute{
				{Key: "type", Val: "application/ld+json"},
				{Key: "id", Val: StructuredDataScriptID},
			},
		}
		script.AppendChild(&html.Node{Type: html.TextNode, Data: string(payload)})
		head.AppendChild(script)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func setText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
