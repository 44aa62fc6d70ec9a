package cli

import (
	"os"

	"github.com/lyralogics/lyrasite/sitecontrol/types"
	"github.com/lyralogics/lyrasite/sitecontrol/util/zlog/zf"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"
	"github.com/spf13/cobra"
)

var cfgFile string = ""

func init() {
	if len(os.Args) > 1 &&
		(os.Args[1] == "version" || os.Args[1] == "completion") {
		return
	}

	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().
		StringVarP(&cfgFile, "config", "c", "", "config file (default is /etc/lyrasite/config.yaml)")
	rootCmd.PersistentFlags().
		StringP("output", "o", "", "Output format. Empty for human-readable, 'json', 'json-line' or 'yaml'")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = os.Getenv("LYRASITE_CONFIG")
	}
	if cfgFile != "" {
		err := types.LoadConfig(cfgFile, true)
		if err != nil {
			log.Fatal().Caller().Err(err).Msgf("Error loading config file %s", cfgFile)
		}
	} else {
		err := types.LoadConfig("", false)
		if err != nil {
			log.Fatal().Caller().Err(err).Msgf("Error loading config")
		}
	}

	logConfig := types.GetLogConfig()
	zerolog.SetGlobalLevel(logConfig.Level)

	// If the user has requested a structured output we
	// prefer that over the log output.
	if HasMachineOutputFlag() {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	if logConfig.Format == types.JSONLogFormat {
		log.Logger = log.Output(os.Stdout)
	}

	_, deadlockDebug := os.LookupEnv(zf.DebugDeadlock)
	deadlock.Opts.Disable = !deadlockDebug
}

var rootCmd = &cobra.Command{
	Use:   "lyrasite",
	Short: "lyrasite - the LyraLogics website server",
	Long: `
lyrasite serves the LyraLogics website: full pages, the site header
and menu as standalone fragments, and the theme assets.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("")
	}
}
