package cli

import (
	"fmt"
	"os"

	"github.com/lyralogics/lyrasite/sitecontrol"
	"github.com/lyralogics/lyrasite/sitecontrol/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("out", "", "Write the markup to this file instead of stdout")
	renderCmd.Flags().String("current", "", "Route name of the page to mark active in the menu")
	renderCmd.Flags().String("page", types.RouteIndex, "Route name of the page to render with 'page'")
}

type renderResult struct {
	Fragment string `json:"fragment" yaml:"fragment"`
	Route    string `json:"route,omitempty" yaml:"route,omitempty"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	HTML     string `json:"html,omitempty" yaml:"html,omitempty"`
}

var renderCmd = &cobra.Command{
	Use:       "render [header|menu|page]",
	Short:     "Render the header, the menu or a full page",
	Long:      "Render the site header, the main menu or a full page with the current configuration and print it.",
	ValidArgs: []string{sitecontrol.FragmentHeader, sitecontrol.FragmentMenu, sitecontrol.FragmentPage},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		out, _ := cmd.Flags().GetString("out")
		current, _ := cmd.Flags().GetString("current")
		page, _ := cmd.Flags().GetString("page")

		site, err := newSiteWithConfig()
		if err != nil {
			ErrorOutput(err, fmt.Sprintf("Error initializing: %s", err), output)
			os.Exit(1)
		}

		route := current
		if args[0] == sitecontrol.FragmentPage {
			route = page
		}

		html, err := render(site, args[0], route)
		if err != nil {
			ErrorOutput(err, fmt.Sprintf("Cannot render %s: %s", args[0], err), output)
			os.Exit(1)
		}

		result := renderResult{Fragment: args[0], Route: route}

		if out == "" {
			result.HTML = html
			SuccessOutput(result, html, output)

			return
		}

		if err := os.WriteFile(out, []byte(html), 0o644); err != nil { //nolint:gosec
			ErrorOutput(err, fmt.Sprintf("Cannot write %s: %s", out, err), output)
			os.Exit(1)
		}

		log.Info().Str("fragment", args[0]).Str("path", out).Msg("Rendered")
		result.Path = out
		SuccessOutput(result, "Wrote "+out, output)
	},
}

// render dispatches to the site renderer for kind. route is the active page
// for fragments and the page itself for pages.
func render(site *sitecontrol.Site, kind string, route string) (string, error) {
	switch kind {
	case sitecontrol.FragmentHeader:
		return site.RenderHeader(route)
	case sitecontrol.FragmentMenu:
		return site.RenderMenu(route)
	case sitecontrol.FragmentPage:
		return site.RenderPage(route)
	default:
		return "", fmt.Errorf("unknown fragment %q", kind)
	}
}

// renderAllPages renders every named page once, surfacing resolver errors
// such as missing assets in strict mode.
func renderAllPages(site *sitecontrol.Site) error {
	for _, name := range sitecontrol.PageNames() {
		if _, err := site.RenderPage(name); err != nil {
			return err
		}
	}

	return nil
}
