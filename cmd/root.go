package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"squish/internal/config"
	"squish/internal/optimizer"
	"squish/internal/tools"
	"squish/internal/tui"
)

var (
	flagMaxDimension int
	flagMinSavings   int
	flagQuality      int
	flagWorkers      int
	flagNoProgress   bool
)

var rootCmd = &cobra.Command{
	Use:   "squish [flags] [path]",
	Short: "squish - losslessly-ish shrink every image under a directory",
	Long: "squish walks a directory tree, downscales images whose longer edge exceeds\n" +
		"the configured bound, recompresses each with a format-appropriate codec\n" +
		"(jpegoptim, optipng, gifsicle), and keeps the result only when it is worth it.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default(runtime.NumCPU())
		if len(args) == 1 {
			cfg.Root = args[0]
		}

		if err := cfg.LoadFile(filepath.Join(cfg.Root, config.ConfigFileName)); err != nil {
			return err
		}
		if err := cfg.ApplyEnv(cfg.Root); err != nil {
			return err
		}
		applyFlagOverrides(cmd, &cfg)

		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := tools.CheckDeps(); err != nil {
			return err
		}

		return runOptimize(cfg)
	},
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("max-dimension") {
		cfg.MaxDimension = flagMaxDimension
	}
	if cmd.Flags().Changed("min-savings") {
		cfg.MinSavingsPercent = flagMinSavings
	}
	if cmd.Flags().Changed("quality") {
		cfg.JPEGQuality = flagQuality
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = flagWorkers
	}
	cfg.NoProgress = flagNoProgress
}

func runOptimize(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := optimizer.Options{
		MaxDimension:      cfg.MaxDimension,
		MinSavingsPercent: cfg.MinSavingsPercent,
		JPEGQuality:       cfg.JPEGQuality,
		Workers:           cfg.Workers,
		ErrorLogPath:      cfg.ErrorLogPath,
	}

	var updates chan optimizer.ProgressUpdate
	uiDone := make(chan struct{})
	if cfg.NoProgress {
		close(uiDone)
	} else {
		updates = make(chan optimizer.ProgressUpdate, 64)
		program := tea.NewProgram(tui.NewModel(updates))
		go func() {
			_, _ = program.Run()
			close(uiDone)
		}()
	}

	stats, outcomes, err := optimizer.Run(ctx, cfg.Root, opts, tools.NewExternal(), updates)
	if updates != nil {
		close(updates)
	}
	<-uiDone
	if err != nil {
		return err
	}

	printFailures(outcomes)
	printSummary(stats, cfg.ErrorLogPath)
	return nil
}

func printFailures(outcomes []optimizer.Outcome) {
	for _, out := range outcomes {
		if out.Status != optimizer.StatusFailed {
			continue
		}
		fmt.Fprintf(os.Stdout, "%s %s %s\n",
			errorMarkStyle.Render("✗"),
			pathStyle.Render(out.Display),
			reasonStyle.Render(fmt.Sprintf("(%s: %s)", out.Stage, out.Reason)),
		)
	}
}

func printSummary(stats optimizer.RunStats, errorLogPath string) {
	rows := []tui.SummaryRow{
		{Label: "Images found", Value: fmt.Sprintf("%d", stats.Found)},
		{Label: "Optimized", Value: fmt.Sprintf("%d", stats.Processed)},
		{Label: "Resized", Value: fmt.Sprintf("%d", stats.Resized)},
		{Label: "Skipped (below threshold)", Value: fmt.Sprintf("%d", stats.Skipped)},
		{Label: "Errors", Value: fmt.Sprintf("%d", stats.Errors)},
		{Label: "Size before", Value: tui.FormatBytes(stats.SizeBefore)},
		{Label: "Size after", Value: tui.FormatBytes(stats.SizeAfter)},
		{Label: "Space saved", Value: fmt.Sprintf("%s (%d%%)", tui.FormatBytes(stats.BytesSaved()), stats.SavedPercent())},
	}
	fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))

	if stats.Errors > 0 {
		fmt.Fprintf(os.Stdout, "%s\n",
			warnStyle.Render(fmt.Sprintf("%d failure(s) recorded in %s", stats.Errors, errorLogPath)))
	}
}

var (
	pathStyle      = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	reasonStyle    = lipgloss.NewStyle().Foreground(tui.ColorDim)
	warnStyle      = lipgloss.NewStyle().Foreground(tui.ColorWarn)
	errorMarkStyle = lipgloss.NewStyle().Foreground(tui.ColorError)
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.Flags().IntVar(&flagMaxDimension, "max-dimension", 2048, "longer-edge pixel bound; larger images are downscaled")
	rootCmd.Flags().IntVar(&flagMinSavings, "min-savings", 1, "minimum savings percent required to keep recompressed bytes")
	rootCmd.Flags().IntVar(&flagQuality, "quality", 85, "JPEG recompression quality ceiling")
	rootCmd.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "number of images processed in parallel")
	rootCmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "disable the live progress display")
}
