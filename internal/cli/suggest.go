package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"statgraft/internal/pipeline"
)

var suggestJSON bool

// suggestCmd represents the suggest command
var suggestCmd = &cobra.Command{
	Use:   "suggest <file>",
	Short: "Recommend visual elements for a post",
	Long: `Suggest analyzes a post and recommends charts, screenshots, comparison
tables, before/after visuals, and flowcharts, each with a tool and a time
estimate. The document is never modified.

Example:
  statgraft suggest post.md
  statgraft suggest post.md --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "print the suggestions as JSON")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	_, _, body, err := readPost(args[0])
	if err != nil {
		return err
	}

	p := pipeline.New(loadConfig(), nil)
	result := p.SuggestVisuals(body)
	if !result.Success {
		return fmt.Errorf("suggestion analysis: %s", result.Error)
	}

	if suggestJSON {
		return pipeline.RenderJSON(os.Stdout, result)
	}

	fmt.Print(pipeline.SuggestSummary(result))
	return nil
}
