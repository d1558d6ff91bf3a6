package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "figref",
		Short: "Figure caption and reference extraction for OCR-converted books",
		Long: `figref processes OCR-converted markdown books and extracts, for every
embedded image, the context needed to tie it to a figure caption:

  - the text surrounding the image marker
  - caption candidates found near the marker
  - in-text citations of each caption ("如图2所示", "see Figure 3.1")
  - a classification of how reliably image and caption could be paired

Corrupted caption fragments, such as a figure number with an OCR-glued
year range, are repaired by trimming them back to a form the document
body actually cites.

Results are written as one JSON context file per book.`,
		Version: version,
	}

	rootCmd.PersistentFlags().String("config", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(sampleCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the process logger. Verbose mode switches to the
// development encoder with debug level enabled.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
