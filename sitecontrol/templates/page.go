package templates

import (
	"fmt"

	"github.com/chasefleming/elem-go"
	"github.com/chasefleming/elem-go/attrs"
)

// PageProps are the inputs of Page.
type PageProps struct {
	Title    string
	SiteName string

	Assets      AssetResolver
	Stylesheets []string
	Scripts     []string

	Header  *elem.Element
	Content elem.Node
}

// Page renders a full document: the theme stylesheets, the header, a title
// banner, the content and the theme scripts.
func Page(props PageProps) (*elem.Element, error) {
	head := []elem.Node{
		elem.Title(nil, text(pageTitle(props.Title, props.SiteName))),
	}
	for _, sheet := range props.Stylesheets {
		href, err := props.Assets.Asset(sheet)
		if err != nil {
			return nil, fmt.Errorf("resolving stylesheet: %w", err)
		}
		head = append(head, elem.Link(attrs.Props{attrs.Rel: "stylesheet", attrs.Href: href}))
	}

	wrapper := []elem.Node{}
	if props.Header != nil {
		wrapper = append(wrapper, props.Header)
	}
	wrapper = append(wrapper,
		elem.Section(class("page-header"),
			elem.Div(class("container"),
				elem.Div(class("page-header__inner"),
					elem.H2(nil, text(props.Title)),
				),
			),
		),
	)
	if props.Content != nil {
		wrapper = append(wrapper, props.Content)
	}

	body := []elem.Node{
		elem.Div(class("page-wrapper"), wrapper...),
	}
	for _, script := range props.Scripts {
		src, err := props.Assets.Asset(script)
		if err != nil {
			return nil, fmt.Errorf("resolving script: %w", err)
		}
		body = append(body, elem.Script(attrs.Props{attrs.Src: src}))
	}

	return HtmlStructure(head, elem.Body(nil, body...)), nil
}

func pageTitle(title, siteName string) string {
	switch {
	case title == "":
		return siteName
	case siteName == "":
		return title
	default:
		return title + " | " + siteName
	}
}

// PageContent is the body section of a page: a short lead paragraph below
// the title banner.
func PageContent(name, lead string) *elem.Element {
	return elem.Section(class(name+"-page page-content"),
		elem.Div(class("container"),
			elem.P(class("page-content__lead"), text(lead)),
		),
	)
}
