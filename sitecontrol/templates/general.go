// Package templates builds the site markup with elem-go. Every function here
// is pure: the same inputs always render to the same bytes.
package templates

import (
	"html"

	"github.com/chasefleming/elem-go"
	"github.com/chasefleming/elem-go/attrs"
	"github.com/microcosm-cc/bluemonday"
)

// RouteResolver maps a symbolic route name to a URL.
type RouteResolver interface {
	Route(name string, pairs ...string) (string, error)
}

// AssetResolver maps a logical static file path to a URL.
type AssetResolver interface {
	Asset(path string) (string, error)
}

// strictPolicy strips every tag from configured text.
var strictPolicy = bluemonday.StrictPolicy()

// text creates a text node from untrusted text. The policy output is
// unescaped again because elem escapes text nodes itself.
func text(s string) elem.Node {
	return elem.Text(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// class is a shorthand for an attribute set holding only a class.
func class(name string) attrs.Props {
	return attrs.Props{attrs.Class: name}
}

// HtmlStructure creates a complete HTML document with the meta tags every
// page shares. head is appended to the shared head elements.
func HtmlStructure(head []elem.Node, body *elem.Element) *elem.Element {
	shared := []elem.Node{
		elem.Meta(attrs.Props{
			attrs.Charset: "UTF-8",
		}),
		elem.Meta(attrs.Props{
			attrs.HTTPequiv: "X-UA-Compatible",
			attrs.Content:   "IE=edge",
		}),
		elem.Meta(attrs.Props{
			attrs.Name:    "viewport",
			attrs.Content: "width=device-width, initial-scale=1.0",
		}),
		elem.Link(attrs.Props{
			attrs.Rel:  "icon",
			attrs.Href: "/favicon.ico",
		}),
	}

	return elem.Html(attrs.Props{attrs.Lang: "en"},
		elem.Head(nil, append(shared, head...)...),
		body,
	)
}
