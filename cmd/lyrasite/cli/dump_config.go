package cli

import (
	"fmt"
	"path/filepath"

	"github.com/lyralogics/lyrasite/sitecontrol/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultDumpPath = "/etc/lyrasite/config.dump.yaml"

func init() {
	rootCmd.AddCommand(dumpConfigCmd)
}

var dumpConfigCmd = &cobra.Command{
	Use:    "dumpConfig [path]",
	Short:  "dump the merged config, defaults included, to a file",
	Hidden: true,
	Args:   cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultDumpPath
		if len(args) == 1 {
			path = args[0]
		}

		return dumpConfig(path)
	},
}

func dumpConfig(path string) error {
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("dumping config: %w", err)
	}

	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("dumping config: %w", err)
	}

	return nil
}
