package templates

import (
	"fmt"
	"strings"

	"github.com/chasefleming/elem-go"
	"github.com/chasefleming/elem-go/attrs"
	"github.com/lyralogics/lyrasite/sitecontrol/types"
	"github.com/samber/lo"
)

// MenuList renders the main navigation list. current is the route name of
// the page being shown; the item leading to it is marked "current".
func MenuList(routes RouteResolver, items []types.MenuItem, current string) (*elem.Element, error) {
	lis, err := menuItems(routes, items, current)
	if err != nil {
		return nil, err
	}

	return elem.Ul(class("main-menu__list"), lis...), nil
}

func menuItems(routes RouteResolver, items []types.MenuItem, current string) ([]elem.Node, error) {
	nodes := make([]elem.Node, 0, len(items))

	for _, item := range items {
		href, err := routes.Route(item.Route)
		if err != nil {
			return nil, fmt.Errorf("resolving menu item %q: %w", item.Label, err)
		}

		var classes []string
		children := []elem.Node{
			elem.A(attrs.Props{attrs.Href: href}, text(item.Label)),
		}

		if len(item.Children) > 0 {
			classes = append(classes, "dropdown")

			sub, err := menuItems(routes, item.Children, current)
			if err != nil {
				return nil, err
			}
			children = append(children, elem.Ul(nil, sub...))
		}

		if current != "" && lo.Contains(item.Routes(), current) {
			classes = append(classes, "current")
		}

		var props attrs.Props
		if len(classes) > 0 {
			props = class(strings.Join(classes, " "))
		}

		nodes = append(nodes, elem.Li(props, children...))
	}

	return nodes, nil
}
