package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tsawler/figref/stats"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Tally image classifications across a processed corpus",
		Long: `Stats reads every context file under <input>/context and prints how many
images were classified normal, abnormal, and extreme abnormal.

Example:
  figref stats --input ./corpus`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			if dir, _ := cmd.Flags().GetString("input"); dir != "" {
				cfg.InputDir = dir
			}

			log, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			reporter := stats.NewReporter(stats.WithLogger(log))
			counts, err := reporter.ClassificationCounts(filepath.Join(cfg.InputDir, "context"))
			if err != nil {
				return err
			}

			fmt.Printf("normal:           %d\n", counts.Normal)
			fmt.Printf("abnormal:         %d\n", counts.Abnormal)
			fmt.Printf("extreme abnormal: %d\n", counts.ExtremeAbnormal)
			fmt.Printf("total:            %d\n", counts.Total())
			return nil
		},
	}

	cmd.Flags().StringP("input", "i", "", "corpus directory containing context/")
	return cmd
}

func sampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Sample context files with abnormal images for manual review",
		Long: `Sample copies a random percentage of the context files that contain at
least one abnormal image into <input>/abnormal_sample, together with a
sample_summary.json describing the run.

Example:
  figref sample --input ./corpus --rate 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			if dir, _ := cmd.Flags().GetString("input"); dir != "" {
				cfg.InputDir = dir
			}
			if cmd.Flags().Changed("rate") {
				cfg.SampleRate, _ = cmd.Flags().GetFloat64("rate")
			}

			log, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			reporter := stats.NewReporter(stats.WithLogger(log))
			summary, err := reporter.SampleAbnormal(cfg.InputDir, cfg.SampleRate)
			if err != nil {
				return err
			}

			fmt.Printf("files with abnormal images: %d\n", summary.TotalFilesWithAbnormal)
			fmt.Printf("files sampled:              %d\n", summary.SampledFilesCount)
			fmt.Printf("abnormal images in sample:  %d\n", summary.TotalAbnormalInSample)
			return nil
		},
	}

	cmd.Flags().StringP("input", "i", "", "corpus directory containing context/")
	cmd.Flags().Float64("rate", 1.0, "percentage of eligible files to sample")
	return cmd
}
