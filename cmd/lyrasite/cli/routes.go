package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/lyralogics/lyrasite/sitecontrol/routes"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(routesCmd)
}

var routesCmd = &cobra.Command{
	Use:     "routes",
	Short:   "List the named routes of the site",
	Aliases: []string{"r", "route"},
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		site, err := newSiteWithConfig()
		if err != nil {
			ErrorOutput(err, fmt.Sprintf("Error initializing: %s", err), output)
			os.Exit(1)
		}

		named := routes.Named(site.Router())

		if output != "" {
			SuccessOutput(named, "", output)

			return
		}

		err = pterm.DefaultTable.WithHasHeader().WithData(routesTable(named)).Render()
		if err != nil {
			ErrorOutput(
				err,
				fmt.Sprintf("Failed to render pterm table: %s", err),
				output,
			)
			os.Exit(1)
		}
	},
}

func routesTable(named []routes.Info) pterm.TableData {
	tableData := pterm.TableData{{"Name", "Path", "Methods"}}
	for _, info := range named {
		methods := strings.Join(info.Methods, ", ")
		if methods == "" {
			methods = "ALL"
		}
		tableData = append(tableData, []string{info.Name, info.Path, methods})
	}

	return tableData
}
