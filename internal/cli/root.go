// Package cli wires the statgraft commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"statgraft/internal/markdown"
	"statgraft/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "statgraft",
	Short: "Statgraft - charts, verified statistics, and visual suggestions for markdown posts",
	Long: `Statgraft analyzes markdown blog posts and grafts data-driven visuals
onto them.

It extracts the statistics a post already makes, groups related figures,
and splices rendered chart embeds next to the claims they illustrate. It
can also replace drafted numbers with verified, cited data from a
web-search collaborator, and recommend screenshots, comparison tables,
and flowcharts the post would benefit from.

The document is never corrupted: a failed run returns the original text
untouched.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("statgraft v0.2.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.statgraft/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.statgraft")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("STATGRAFT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig layers the config file and environment over the defaults
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid configuration, using defaults: %v\n", err)
		cfg = model.DefaultConfig()
	}
	cfg.Output.Verbose = verbose
	return cfg
}

// readPost loads a markdown file and splits off its frontmatter
func readPost(path string) (raw string, meta model.Metadata, body string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", model.Metadata{}, "", fmt.Errorf("read %s: %w", path, err)
	}
	raw, meta, body = markdown.SplitFrontmatter(string(data))
	return raw, meta, body, nil
}

// writeDocument routes the transformed document: in place, to a path, or
// to stdout.
func writeDocument(doc, inPath, outPath string, inPlace bool) error {
	switch {
	case inPlace:
		if err := os.WriteFile(inPath, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", inPath, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Updated %s\n", inPath)
		}
	case outPath != "":
		if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", outPath)
		}
	default:
		fmt.Print(doc)
	}
	return nil
}
