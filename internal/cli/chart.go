package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"statgraft/internal/markdown"
	"statgraft/internal/pipeline"
)

var (
	chartWrite     bool
	chartOutput    string
	chartJSON      bool
	chartScriptURL string
)

// chartCmd represents the chart command
var chartCmd = &cobra.Command{
	Use:   "chart <file>",
	Short: "Extract statistics and splice chart embeds into a post",
	Long: `Chart scans a markdown post for statistics, groups related figures
(before/after pairs, key metrics, cost comparisons), and splices a rendered
chart embed next to each group.

By default the transformed document is printed to stdout.

Example:
  statgraft chart post.md
  statgraft chart post.md --write
  statgraft chart post.md --output enriched.md --json`,
	Args: cobra.ExactArgs(1),
	RunE: runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().BoolVarP(&chartWrite, "write", "w", false, "rewrite the file in place")
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "", "write the document to this path")
	chartCmd.Flags().BoolVar(&chartJSON, "json", false, "print the run report as JSON to stdout")
	chartCmd.Flags().StringVar(&chartScriptURL, "script-url", "", "chart library script URL override")
}

func runChart(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg := loadConfig()
	if chartScriptURL != "" {
		cfg.Chart.ScriptURL = chartScriptURL
	}

	raw, _, body, err := readPost(path)
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, nil)
	result := p.GenerateCharts(body)
	if !result.Success {
		return fmt.Errorf("chart generation: %s", result.Error)
	}

	doc := markdown.JoinFrontmatter(raw, result.Content)

	if chartJSON {
		if err := pipeline.RenderJSON(os.Stdout, result); err != nil {
			return err
		}
		if !chartWrite && chartOutput == "" {
			return nil
		}
		return writeDocument(doc, path, chartOutput, chartWrite)
	}

	if err := writeDocument(doc, path, chartOutput, chartWrite); err != nil {
		return err
	}

	if chartWrite || chartOutput != "" {
		fmt.Print(pipeline.ChartSummary(result))
	} else if verbose {
		fmt.Fprint(os.Stderr, pipeline.ChartSummary(result))
	}
	return nil
}
