package templates

import (
	"fmt"

	"github.com/chasefleming/elem-go"
	"github.com/chasefleming/elem-go/attrs"
	"github.com/lyralogics/lyrasite/sitecontrol/types"
)

// LogoAsset is the logical path of the logo shown in the header.
const LogoAsset = "assets/images/resources/logo-1.png"

// HeaderProps are the inputs of HeaderStyleOne.
type HeaderProps struct {
	Routes  RouteResolver
	Assets  AssetResolver
	Contact types.Contact
	// Menu is expanded in place inside the main menu box. A nil Menu is
	// left out.
	Menu elem.Node
}

// HeaderStyleOne renders the site header: a top strip with the tagline and
// contact list, followed by the navigation bar with the logo, the menu, and
// the search, call to action and sidebar toggles.
//
// The class names are the hooks of the theme stylesheets and scripts and
// must not change.
func HeaderStyleOne(props HeaderProps) (*elem.Element, error) {
	home, err := props.Routes.Route(types.RouteIndex)
	if err != nil {
		return nil, fmt.Errorf("resolving logo link: %w", err)
	}

	logo, err := props.Assets.Asset(LogoAsset)
	if err != nil {
		return nil, fmt.Errorf("resolving logo image: %w", err)
	}

	contact, err := props.Routes.Route(types.RouteContact)
	if err != nil {
		return nil, fmt.Errorf("resolving call to action link: %w", err)
	}

	return elem.Header(class("main-header-two"),
		headerTop(props.Contact),
		elem.Nav(class("main-menu main-menu-two"),
			elem.Div(class("main-menu-two__wrapper"),
				elem.Div(class("main-menu-two__wrapper-inner"),
					elem.Div(class("main-menu-two__left"),
						elem.Div(class("main-menu-two__logo"),
							elem.A(attrs.Props{attrs.Href: home},
								elem.Img(attrs.Props{attrs.Src: logo, attrs.Alt: ""}),
							),
						),
					),
					mainMenuBox(props.Menu),
					headerRight(contact, props.Contact.CTALabel),
				),
			),
		),
	), nil
}

func headerTop(c types.Contact) *elem.Element {
	return elem.Div(class("main-menu-two__top"),
		elem.Div(class("main-menu-two__top-inner"),
			elem.P(class("main-menu-two__top-text"), text(c.Tagline)),
			elem.Ul(class("list-unstyled main-menu-two__contact-list"),
				contactItem("icon-pin", text(c.Address)),
				contactItem("icon-search-mail",
					elem.A(attrs.Props{attrs.Href: "mailto:" + c.Email}, text(c.Email)),
				),
				contactItem("icon-phone-call",
					elem.A(attrs.Props{attrs.Href: "tel:" + c.PhoneDial}, text(c.Phone)),
				),
			),
		),
	)
}

func contactItem(icon string, content elem.Node) *elem.Element {
	return elem.Li(nil,
		elem.Div(class("icon"),
			elem.I(class(icon)),
		),
		elem.Div(class("text"),
			elem.P(nil, content),
		),
	)
}

func mainMenuBox(menu elem.Node) *elem.Element {
	children := []elem.Node{
		elem.A(attrs.Props{attrs.Href: "#", attrs.Class: "mobile-nav__toggler"},
			elem.I(class("fa fa-bars")),
		),
	}
	if menu != nil {
		children = append(children, menu)
	}

	return elem.Div(class("main-menu-two__main-menu-box"), children...)
}

func headerRight(contactURL, ctaLabel string) *elem.Element {
	return elem.Div(class("main-menu-two__right"),
		elem.Div(class("main-menu-two__search-box"),
			elem.A(attrs.Props{
				attrs.Href:  "#",
				attrs.Class: "main-menu-two__search searcher-toggler-box icon-search-interface-symbol",
			}),
		),
		elem.Div(class("main-menu-two__btn-box"),
			elem.A(attrs.Props{attrs.Href: contactURL, attrs.Class: "thm-btn"},
				text(ctaLabel),
				elem.Span(class("icon-right-arrow")),
			),
		),
		elem.Div(class("main-menu-two__nav-sidebar-icon"),
			elem.A(attrs.Props{attrs.Href: "#", attrs.Class: "navSidebar-button"},
				elem.Span(class("icon-dots-menu-one")),
				elem.Span(class("icon-dots-menu-two")),
				elem.Span(class("icon-dots-menu-three")),
			),
		),
	)
}
