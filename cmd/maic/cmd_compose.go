package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"maic/internal/retrieval"
	"maic/internal/service"
)

var (
	composeMode   string
	composeHits   string
	composeStrict bool
	composeJSON   bool
)

// composeCmd runs the full inbound pipeline for one question.
var composeCmd = &cobra.Command{
	Use:   "compose [question]",
	Short: "Compose the system prompt for a question",
	Long: `Runs the pipeline for a single question: canonicalize the mode token,
rerank the supplied evidence hits, decide the citation label and render
the system prompt.

Hits are read as a JSON array of objects from --hits (a file path, or
"-" for stdin). Without --hits the demo searcher supplies evidence.

Example:
  maic compose --mode 문법 "분사구문이 뭐예요?"
  maic compose --mode sentence --hits hits.json "Analyze this sentence"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")

		tutor, cleanup, err := buildTutor(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		hits, err := readHits(question, tutor)
		if err != nil {
			return err
		}

		res, err := tutor.ComposePrompt(cmd.Context(), service.ComposeRequest{
			Question:  question,
			ModeToken: composeMode,
			Hits:      hits,
			Strict:    composeStrict,
		})
		if err != nil {
			return err
		}

		if composeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		fmt.Printf("request: %s\n", res.RequestID)
		fmt.Printf("mode: %s  model: %s  label: %s\n", res.Mode.Key(), res.Prompt.Model, res.SourceLabel)
		fmt.Printf("hits: %d ranked\n", len(res.RankedHits))
		for i, h := range res.RankedHits {
			fmt.Printf("  %d. %s (base score %.2f)\n", i+1, retrieval.DocKey(h), h.BaseScore())
		}
		fmt.Println()
		fmt.Println(res.Prompt.SystemPrompt)
		return nil
	},
}

// readHits loads hits from --hits, or falls back to the demo searcher.
func readHits(question string, tutor *service.Tutor) ([]retrieval.Hit, error) {
	if composeHits == "" {
		return tutor.SearchHits(question), nil
	}

	var data []byte
	var err error
	if composeHits == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(composeHits)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read hits: %w", err)
	}

	var hits []retrieval.Hit
	if err := json.Unmarshal(data, &hits); err != nil {
		return nil, fmt.Errorf("failed to parse hits JSON: %w", err)
	}
	return hits, nil
}

func init() {
	composeCmd.Flags().StringVarP(&composeMode, "mode", "m", "grammar", "Mode token (alias, Korean label or canonical key)")
	composeCmd.Flags().StringVar(&composeHits, "hits", "", "JSON file of evidence hits (\"-\" for stdin)")
	composeCmd.Flags().BoolVar(&composeStrict, "strict", false, "Reject unknown mode tokens instead of defaulting to grammar")
	composeCmd.Flags().BoolVar(&composeJSON, "json", false, "Emit the full response as JSON")
}
