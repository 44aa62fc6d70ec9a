package cli

import (
	"fmt"

	"github.com/lyralogics/lyrasite/sitecontrol"
	"github.com/lyralogics/lyrasite/sitecontrol/types"
)

func newSiteWithConfig() (*sitecontrol.Site, error) {
	cfg, err := types.GetSiteControlConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	site, err := sitecontrol.NewSite(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating new site: %w", err)
	}

	return site, nil
}
