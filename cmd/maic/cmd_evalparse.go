package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"maic/internal/evaluation"
)

var evalParseFile string

// evalParseCmd parses a reviewer feedback block into structured JSON.
var evalParseCmd = &cobra.Command{
	Use:   "evalparse",
	Short: "Parse reviewer feedback into structured JSON",
	Long: `Parses a reviewer model's feedback block (섹션/괄호규칙/사실성 verdicts
plus the [한 줄 총평] summary) and emits the structured result as JSON.
Unparseable fields stay empty; parsing never fails.

Example:
  maic evalparse < feedback.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if evalParseFile != "" && evalParseFile != "-" {
			data, err = os.ReadFile(evalParseFile)
		} else {
			data, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return fmt.Errorf("failed to read feedback: %w", err)
		}

		res := evaluation.Parse(string(data))
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	evalParseCmd.Flags().StringVarP(&evalParseFile, "file", "f", "", "Read feedback from file (\"-\" for stdin)")
}
