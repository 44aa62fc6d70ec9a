package sitecontrol

import (
	"github.com/lyralogics/lyrasite/sitecontrol/types"
	"github.com/samber/lo"
)

// page is a full page served under a named route.
type page struct {
	name  string
	path  string
	title string
	lead  string
}

var pages = []page{
	{
		name:  types.RouteIndex,
		path:  "/",
		title: "Home",
		lead:  "Managed IT, cloud and security services that keep your business running.",
	},
	{
		name:  types.RouteAbout,
		path:  "/about",
		title: "About Us",
		lead:  "LyraLogics is an IT services company based in Snellville, Georgia.",
	},
	{
		name:  types.RouteServices,
		path:  "/services",
		title: "Services",
		lead:  "Help desk, network management, cloud migration and backup.",
	},
	{
		name:  types.RoutePortfolio,
		path:  "/portfolio",
		title: "Portfolio",
		lead:  "A selection of projects we delivered for our clients.",
	},
	{
		name:  types.RouteTeam,
		path:  "/team",
		title: "Our Team",
		lead:  "The engineers and consultants behind LyraLogics.",
	},
	{
		name:  types.RoutePricing,
		path:  "/pricing",
		title: "Pricing",
		lead:  "Simple monthly plans for businesses of every size.",
	},
	{
		name:  types.RouteFAQ,
		path:  "/faq",
		title: "FAQs",
		lead:  "Answers to the questions we hear most often.",
	},
	{
		name:  types.RouteBlog,
		path:  "/blog",
		title: "Blog",
		lead:  "News and practical advice from our team.",
	},
	{
		name:  types.RouteContact,
		path:  "/contact",
		title: "Contact",
		lead:  "Tell us about your IT and we will get back to you within one business day.",
	},
}

func findPage(name string) (page, bool) {
	return lo.Find(pages, func(p page) bool {
		return p.name == name
	})
}

// PageNames returns the route names of the full pages.
func PageNames() []string {
	return lo.Map(pages, func(p page, _ int) string {
		return p.name
	})
}
