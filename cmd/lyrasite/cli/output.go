package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// formatOutput renders result in outputFormat. An empty or unknown format
// yields override, the human readable form.
func formatOutput(result any, override string, outputFormat string) (string, error) {
	var out []byte
	var err error
	switch outputFormat {
	case "json":
		out, err = json.MarshalIndent(result, "", "\t")
	case "json-line":
		out, err = json.Marshal(result)
	case "yaml":
		out, err = yaml.Marshal(result)
	default:
		return override, nil
	}
	if err != nil {
		return "", fmt.Errorf("formatting %s output: %w", outputFormat, err)
	}

	return string(out), nil
}

func SuccessOutput(result any, override string, outputFormat string) {
	out, err := formatOutput(result, override, outputFormat)
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}

	//nolint
	fmt.Fprintln(os.Stdout, out)
}

func ErrorOutput(errResult error, override string, outputFormat string) {
	type errOutput struct {
		Error string `json:"error" yaml:"error"`
	}

	SuccessOutput(errOutput{errResult.Error()}, override, outputFormat)
}

func HasMachineOutputFlag() bool {
	for _, arg := range os.Args {
		if arg == "json" || arg == "json-line" || arg == "yaml" {
			return true
		}
	}

	return false
}
