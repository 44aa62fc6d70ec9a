package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

var errMenuInvalid = errors.New("invalid menu")

// Route names registered by the site router. Templates and menu files refer
// to pages by these names only, never by path.
const (
	RouteIndex     = "index"
	RouteAbout     = "about"
	RouteServices  = "services"
	RoutePortfolio = "portfolio"
	RouteTeam      = "team"
	RoutePricing   = "pricing"
	RouteFAQ       = "faq"
	RouteBlog      = "blog"
	RouteContact   = "contact"
)

// MenuItem is an entry of the main navigation list. Items with children are
// rendered as dropdowns.
type MenuItem struct {
	Label    string     `json:"label" yaml:"label"`
	Route    string     `json:"route" yaml:"route"`
	Children []MenuItem `json:"children,omitempty" yaml:"children,omitempty"`
}

// DefaultMenu is used when no menu file is configured.
var DefaultMenu = []MenuItem{
	{Label: "Home", Route: RouteIndex},
	{Label: "About", Route: RouteAbout},
	{
		Label: "Pages",
		Route: RouteTeam,
		Children: []MenuItem{
			{Label: "Team", Route: RouteTeam},
			{Label: "Pricing", Route: RoutePricing},
			{Label: "FAQs", Route: RouteFAQ},
		},
	},
	{Label: "Services", Route: RouteServices},
	{Label: "Portfolio", Route: RoutePortfolio},
	{Label: "Blog", Route: RouteBlog},
	{Label: "Contact", Route: RouteContact},
}

// LoadMenuFromPath reads a menu definition written in HuJSON (JSON with
// comments and trailing commas).
func LoadMenuFromPath(path string) ([]MenuItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading menu file: %w", err)
	}

	return ParseMenu(data)
}

// ParseMenu decodes and validates a HuJSON menu definition.
func ParseMenu(data []byte) ([]MenuItem, error) {
	ast, err := hujson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing menu: %w", err)
	}
	ast.Standardize()

	var items []MenuItem
	if err := json.Unmarshal(ast.Pack(), &items); err != nil {
		return nil, fmt.Errorf("decoding menu: %w", err)
	}

	if err := ValidateMenu(items); err != nil {
		return nil, err
	}

	return items, nil
}

// ValidateMenu checks that every item, at any depth, has a label and a route.
func ValidateMenu(items []MenuItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: menu has no items", errMenuInvalid)
	}

	var check func(prefix string, items []MenuItem) error
	check = func(prefix string, items []MenuItem) error {
		for idx, item := range items {
			where := fmt.Sprintf("%s[%d]", prefix, idx)
			if item.Label == "" {
				return fmt.Errorf("%w: %s has no label", errMenuInvalid, where)
			}
			if item.Route == "" {
				return fmt.Errorf("%w: %s (%q) has no route", errMenuInvalid, where, item.Label)
			}
			if err := check(where+".children", item.Children); err != nil {
				return err
			}
		}

		return nil
	}

	return check("menu", items)
}

// Routes returns the route of the item followed by the routes of its
// children, depth first.
func (m MenuItem) Routes() []string {
	routes := []string{m.Route}
	for _, child := range m.Children {
		routes = append(routes, child.Routes()...)
	}

	return routes
}
