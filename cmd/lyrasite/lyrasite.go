package main

import (
	"os"
	"time"

	"github.com/jagottsicher/termcolor"
	"github.com/lyralogics/lyrasite/cmd/lyrasite/cli"
	"github.com/lyralogics/lyrasite/sitecontrol/util/zlog/zf"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var colors bool
	switch l := termcolor.SupportLevel(os.Stderr); l {
	case termcolor.Level16M:
		colors = true
	case termcolor.Level256:
		colors = true
	case termcolor.LevelBasic:
		colors = true
	case termcolor.LevelNone:
		colors = false
	default:
		// no color, return text as is.
		colors = false
	}

	// Adhere to no-color.org manifesto of allowing users to
	// turn off color in cli/services
	if _, noColorIsSet := os.LookupEnv("NO_COLOR"); noColorIsSet {
		colors = false
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !colors,
	})

	if _, enabled := os.LookupEnv(zf.DebugProfilingEnabled); enabled {
		path := os.Getenv(zf.DebugProfilingPath)
		if path == "" {
			path = "."
		}

		defer profile.Start(profile.ProfilePath(path)).Stop()
	}

	cli.Execute()
}
