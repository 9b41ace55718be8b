package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"statgraft/internal/cache"
	"statgraft/internal/lookup"
	"statgraft/internal/markdown"
	"statgraft/internal/pipeline"
)

var (
	enrichWrite     bool
	enrichOutput    string
	enrichJSON      bool
	enrichModel     string
	enrichMaxStats  int
	enrichDelay     time.Duration
	enrichCheckCite bool
	enrichNoCache   bool
	enrichTimeout   time.Duration
)

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich <file>",
	Short: "Replace drafted statistics with verified, cited data",
	Long: `Enrich submits the post's highest-priority statistics to a web-search
collaborator, replaces each line with verified data, appends a numbered
references section, and optionally probes every citation URL.

Requires PERPLEXITY_API_KEY (or lookup.api_key in the config file).

Example:
  statgraft enrich post.md --write
  statgraft enrich post.md --max-stats 5 --check-citations --json`,
	Args: cobra.ExactArgs(1),
	RunE: runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)

	enrichCmd.Flags().BoolVarP(&enrichWrite, "write", "w", false, "rewrite the file in place")
	enrichCmd.Flags().StringVarP(&enrichOutput, "output", "o", "", "write the document to this path")
	enrichCmd.Flags().BoolVar(&enrichJSON, "json", false, "print the run report as JSON to stdout")
	enrichCmd.Flags().StringVar(&enrichModel, "model", "", "lookup model override")
	enrichCmd.Flags().IntVar(&enrichMaxStats, "max-stats", 0, "max statistics to enrich (default from config)")
	enrichCmd.Flags().DurationVar(&enrichDelay, "delay", 0, "delay between lookup requests (default from config)")
	enrichCmd.Flags().BoolVar(&enrichCheckCite, "check-citations", false, "probe citation URLs after enrichment")
	enrichCmd.Flags().BoolVar(&enrichNoCache, "no-cache", false, "disable the lookup response cache")
	enrichCmd.Flags().DurationVar(&enrichTimeout, "timeout", 5*time.Minute, "overall run timeout")
}

func runEnrich(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg := loadConfig()
	if enrichModel != "" {
		cfg.Lookup.Model = enrichModel
	}
	if enrichMaxStats > 0 {
		cfg.Enrich.MaxStatistics = enrichMaxStats
	}
	if enrichDelay > 0 {
		cfg.Enrich.RequestDelay = enrichDelay
	}
	if enrichCheckCite {
		cfg.Citations.Check = true
	}
	if enrichNoCache {
		cfg.Cache.Enabled = false
	}

	if cfg.Lookup.APIKey == "" {
		cfg.Lookup.APIKey = os.Getenv("PERPLEXITY_API_KEY")
	}
	if cfg.Lookup.APIKey == "" {
		return fmt.Errorf("PERPLEXITY_API_KEY environment variable not set")
	}

	var responseCache cache.Cache
	if cfg.Cache.Enabled {
		responseCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	client, err := lookup.NewSearchClient(cfg.Lookup, responseCache)
	if err != nil {
		return fmt.Errorf("lookup client: %w", err)
	}

	raw, meta, body, err := readPost(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), enrichTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Enriching %s (model %s, max %d statistics)\n", path, cfg.Lookup.Model, cfg.Enrich.MaxStatistics)
	}

	p := pipeline.New(cfg, client)
	result := p.EnrichStatistics(ctx, body, meta)
	if !result.Success {
		return fmt.Errorf("enrichment: %s", result.Error)
	}

	doc := markdown.JoinFrontmatter(raw, result.Content)

	if enrichJSON {
		if err := pipeline.RenderJSON(os.Stdout, result); err != nil {
			return err
		}
		if !enrichWrite && enrichOutput == "" {
			return nil
		}
		return writeDocument(doc, path, enrichOutput, enrichWrite)
	}

	if err := writeDocument(doc, path, enrichOutput, enrichWrite); err != nil {
		return err
	}

	if enrichWrite || enrichOutput != "" {
		fmt.Print(pipeline.EnrichSummary(result))
	} else if verbose {
		fmt.Fprint(os.Stderr, pipeline.EnrichSummary(result))
	}
	return nil
}
