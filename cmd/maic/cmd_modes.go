package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"maic/internal/modes"
)

var modesShowAll bool

// modesCmd lists the instructional modes and their contracts.
var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List instructional modes and their output contracts",
	Long: `Lists the canonical modes (문법/문장/지문) with their goal, expected
output sections and evaluation focus. Disabled modes are hidden unless
--all is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		canon := modes.New()

		specs := canon.EnabledModes()
		if modesShowAll {
			specs = nil
			for _, m := range []modes.Mode{modes.ModeGrammar, modes.ModeSentence, modes.ModePassage, modes.ModeStory} {
				if s, ok := canon.Spec(m); ok {
					specs = append(specs, s)
				}
			}
		}

		for i, s := range specs {
			if i > 0 {
				fmt.Println()
			}
			status := ""
			if !s.Enabled {
				status = " (disabled)"
			}
			fmt.Printf("%s [%s]%s\n", s.Label, s.Key.Key(), status)
			fmt.Printf("  목표: %s\n", s.Goal)
			fmt.Printf("  출력: %s\n", strings.Join(s.OutputShape, " → "))
			fmt.Printf("  평가: %s\n", strings.Join(s.EvalFocus, ", "))
		}
		return nil
	},
}

func init() {
	modesCmd.Flags().BoolVar(&modesShowAll, "all", false, "Include disabled modes")
}
