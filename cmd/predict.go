package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/bcdetect/internal/diagnosis"
	"github.com/abhisek/bcdetect/internal/features"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Classify one set of measurements from a YAML or JSON file",
	Long: "Reads a map of feature name to value (YAML or JSON) and prints the diagnosis.\n" +
		"Features left out of the file count as not filled in.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("input")
		if path == "" {
			return fmt.Errorf("--input is required")
		}

		values, err := readValues(path, features.BreastCancer())
		if err != nil {
			return err
		}

		rt, err := buildRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		out := rt.service.Submit(cmd.Context(), values)
		if out.State != diagnosis.StateDecided {
			msg := diagnosis.UserMessage(out.Err)
			if len(out.Missing) > 0 {
				msg += " Missing: " + strings.Join(out.Missing, ", ")
			}
			return errors.New(msg)
		}
		printOutcome(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	predictCmd.Flags().StringP("input", "i", "", "YAML or JSON file of feature values")
}

// readValues parses a {name: value} file. YAML is a superset of JSON, so one
// decoder covers both. Names the schema doesn't know are rejected.
func readValues(path string, schema *features.Schema) (diagnosis.ValuesProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var values map[string]float64
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse input %s: %w", path, err)
	}

	var unknown []error
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := schema.SpecFor(name); err != nil {
			unknown = append(unknown, err)
		}
	}
	if len(unknown) > 0 {
		return nil, errors.Join(unknown...)
	}
	return diagnosis.ValuesProvider(values), nil
}

func printOutcome(w io.Writer, out diagnosis.Outcome) {
	fmt.Fprintf(w, "The tumor is likely: %s\n", out.Result.Label)
	if g := out.Guidance; g != nil {
		fmt.Fprintf(w, "\n%s\n%s\n", g.Title, g.Summary)
		for _, sec := range g.Sections {
			fmt.Fprintf(w, "\n%s\n", sec.Heading)
			for _, item := range sec.Items {
				fmt.Fprintf(w, "  - %s\n", item)
			}
		}
	}
	fmt.Fprintf(w, "\nrequest %s\n", out.RequestID)
}
