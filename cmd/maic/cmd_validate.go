package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"maic/internal/validation"
)

var (
	validateFile    string
	validateLabels  string
	validateRequire string
)

// validateCmd checks a model answer against the bracket notation contract.
var validateCmd = &cobra.Command{
	Use:   "validate [text]",
	Short: "Validate labeled-bracket sentence analysis output",
	Long: `Checks text against the bracket contract: balanced brackets, known
labels and required labels present. Text comes from the argument, from
--file, or from stdin.

Example:
  maic validate "[S I] [V stayed] [M at home]"
  maic validate --file answer.txt --require S,V,O`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(args)
		if err != nil {
			return err
		}

		var allowed []string
		if validateLabels != "" {
			allowed = splitList(validateLabels)
		}
		required := validation.RequireSV()
		if validateRequire != "" {
			required = splitList(validateRequire)
		}

		rep := validation.Validate(text, allowed, required)

		fmt.Printf("groups: %d\n", rep.Groups)
		if len(rep.Counts) > 0 {
			labels := make([]string, 0, len(rep.Counts))
			for l := range rep.Counts {
				labels = append(labels, l)
			}
			sort.Strings(labels)
			parts := make([]string, 0, len(labels))
			for _, l := range labels {
				parts = append(parts, fmt.Sprintf("%s=%d", l, rep.Counts[l]))
			}
			fmt.Printf("counts: %s\n", strings.Join(parts, " "))
		}
		if rep.OK {
			fmt.Println("OK")
			return nil
		}
		for _, e := range rep.Errors {
			fmt.Printf("FAIL %s\n", e)
		}
		return fmt.Errorf("%d validation error(s)", len(rep.Errors))
	},
}

// readText resolves the input text: argument, --file, or stdin.
func readText(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if validateFile != "" && validateFile != "-" {
		data, err := os.ReadFile(validateFile)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", validateFile, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "Read text from file (\"-\" for stdin)")
	validateCmd.Flags().StringVar(&validateLabels, "labels", "", "Comma-separated allowed labels (default: standard vocabulary)")
	validateCmd.Flags().StringVar(&validateRequire, "require", "", "Comma-separated required labels (default: S,V)")
}
