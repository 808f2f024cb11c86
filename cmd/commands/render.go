package commands

// Command rendering a concurrency CSV into a PNG line chart.
// Input: column 0 epoch seconds, column 1 numeric value, optional header.
// Output: <input stem>.png in the current working directory.

import (
	"fmt"

	"actions-graph/internal/chart"
	"actions-graph/internal/infra/config"
	logging "actions-graph/internal/infra/log"
	"actions-graph/internal/notify"
	"actions-graph/internal/timeseries"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	renderAspect       string
	renderTelegramChat string
)

var renderCmd = &cobra.Command{
	Use:   "render <input.csv>",
	Short: "Render a timestamped CSV into a line-chart PNG",
	Long: `Render reads a CSV whose first column is a Unix epoch timestamp in
seconds and whose second column is a numeric value, then writes a line chart
of value over time to <input stem>.png in the current directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderAspect, "aspect", "", `fix the figure aspect ratio, e.g. "3:1"`)
	renderCmd.Flags().StringVar(&renderTelegramChat, "telegram-chat", "", "send the rendered chart to this Telegram chat ID")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.LogError("failed to load config", zap.Error(err))
		return fmt.Errorf("failed to load config: %w", err)
	}

	aspect := renderAspect
	if aspect == "" {
		aspect = cfg.Chart.Aspect
	}

	outPath, err := renderCSVFile(cfg, args[0], aspect)
	if err != nil {
		logging.LogError("render failed", zap.String("input", args[0]), zap.Error(err))
		return err
	}

	fmt.Printf("Chart written to %s\n", outPath)

	if renderTelegramChat != "" {
		caption := fmt.Sprintf("Concurrent GH action jobs (%s)", timeseries.Stem(args[0]))
		if err := notify.SendChart(cfg.Telegram.BotToken, renderTelegramChat, outPath, caption); err != nil {
			return err
		}
	}

	return nil
}

// renderCSVFile runs the full parse -> transform -> render -> save pipeline
// and returns the written path. Shared with collect --render.
func renderCSVFile(cfg *config.Config, inputPath, aspect string) (string, error) {
	series, err := timeseries.LoadCSV(inputPath)
	if err != nil {
		return "", err
	}

	opts := chart.DefaultOptions()
	opts.Width = cfg.Chart.Width
	opts.Height = cfg.Chart.Height
	if aspect != "" {
		w, h, err := config.ParseAspect(aspect)
		if err != nil {
			return "", err
		}
		opts.AspectW, opts.AspectH = w, h
	}

	outPath := timeseries.OutputName(inputPath)
	if err := chart.RenderLine(series.Points, opts, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}
