package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/MeKo-Tech/textspot/internal/batch"
	"github.com/MeKo-Tech/textspot/internal/pipeline"
	"github.com/spf13/cobra"
)

var imageCmd = &cobra.Command{
	Use:   "image [files or directories...]",
	Short: "Spot and read text in image files",
	Long: `Process image files or directories and print the spotted text.

Supported formats: JPEG, PNG, BMP.

Examples:
  textspot image photo.jpg
  textspot image scan.png --format text
  textspot image ./scans --recursive --include 'page_*.png'
  textspot image *.jpg --format csv --output results.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImage,
}

func init() {
	imageCmd.Flags().StringP("format", "f", "json", "output format (json, text, csv)")
	imageCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
	imageCmd.Flags().Float64P("score-threshold", "t", -1, "acceptance threshold override in [0,1]")
	imageCmd.Flags().IntP("workers", "w", 0, "per-region parallelism override")
	imageCmd.Flags().BoolP("recursive", "r", false, "descend into subdirectories")
	imageCmd.Flags().StringSlice("include", nil, "only process files matching these glob patterns")
	imageCmd.Flags().StringSlice("exclude", nil, "skip files matching these glob patterns")
	imageCmd.Flags().Bool("continue-on-error", false, "report per-file failures instead of aborting")
	rootCmd.AddCommand(imageCmd)
}

func runImage(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")
	threshold, _ := cmd.Flags().GetFloat64("score-threshold")
	workers, _ := cmd.Flags().GetInt("workers")

	batchCfg := batch.DefaultConfig()
	batchCfg.Recursive, _ = cmd.Flags().GetBool("recursive")
	batchCfg.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
	batchCfg.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")
	batchCfg.ContinueOnError, _ = cmd.Flags().GetBool("continue-on-error")

	files, err := batch.Discover(args, batchCfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no image files found")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if workers > 0 {
		cfg.Spotting.Workers = workers
	}
	pl, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = pl.Close() }()

	if threshold >= 0 {
		if err := pl.SetScoreThreshold(threshold); err != nil {
			return err
		}
	}

	results, _, err := batch.Process(ctx, pl, files, batchCfg)
	if err != nil {
		return err
	}

	var rendered string
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
			continue
		}
		out, err := renderResult(r.Result, format)
		if err != nil {
			return err
		}
		rendered += out
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
	return err
}

func renderResult(res *pipeline.Result, format string) (string, error) {
	switch format {
	case "json":
		out, err := res.ToJSON()
		if err != nil {
			return "", err
		}
		return out + "\n", nil
	case "text":
		return res.ToPlainText(), nil
	case "csv":
		return res.ToCSV()
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}
