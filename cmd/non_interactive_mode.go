package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/sst/ghosttext/internal/app"
	"github.com/sst/ghosttext/internal/config"
	"github.com/sst/ghosttext/internal/format"
	"github.com/sst/ghosttext/internal/tui/components/spinner"
	"github.com/sst/ghosttext/internal/tui/theme"
)

// syncWriter is a thread-safe writer that prevents interleaved output
type syncWriter struct {
	w  io.Writer
	mu sync.Mutex
}

// Write implements io.Writer
func (sw *syncWriter) Write(p []byte) (n int, err error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}

// newSyncWriter creates a new synchronized writer
func newSyncWriter(w io.Writer) io.Writer {
	return &syncWriter{w: w}
}

// handleNonInteractiveMode completes prompt once and prints the suggestion to out.
func handleNonInteractiveMode(ctx context.Context, cfg *config.Config, prompt string, outputFormat format.OutputFormat, quiet bool, verbose bool, out io.Writer) error {
	slog.Info("Running in one-shot mode", "length", len(prompt), "format", outputFormat, "quiet", quiet, "verbose", verbose)

	// Sanity check for mutually exclusive flags
	if quiet && verbose {
		return fmt.Errorf("--quiet and --verbose flags cannot be used together")
	}

	// Set up logging to stderr if verbose mode is enabled
	if verbose {
		// Create a synchronized writer to prevent interleaved output
		syncWriter := newSyncWriter(os.Stderr)

		charmLogger := charmlog.NewWithOptions(syncWriter, charmlog.Options{
			Level:           charmlog.DebugLevel,
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "ghosttext",
		})
		charmlog.SetDefault(charmLogger)

		// Forward all slog records to charmbracelet/log
		slog.SetDefault(slog.New(charmLogger))
		charmLogger.Info("Verbose logging enabled")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("Failed to create app", "error", err)
		return err
	}
	defer app.Shutdown()

	return completeOnce(ctx, app, prompt, outputFormat, quiet, out)
}

func completeOnce(ctx context.Context, app *app.App, prompt string, outputFormat format.OutputFormat, quiet bool, out io.Writer) error {
	var s *spinner.Spinner
	if !quiet {
		s = spinner.NewThemedSpinner("Thinking...", theme.CurrentTheme().Primary())
		s.Start()
		defer s.Stop()
	}

	suggestion, err := app.SuggestOnce(ctx, prompt)
	if err != nil {
		return fmt.Errorf("completion failed: %w", err)
	}

	formattedOutput, err := format.FormatOutput(prompt, suggestion.Text, outputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	// Stop spinner before printing output
	if s != nil {
		s.Stop()
	}

	fmt.Fprintln(out, formattedOutput)
	return nil
}
