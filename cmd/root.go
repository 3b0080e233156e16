package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/sst/ghosttext/internal/app"
	"github.com/sst/ghosttext/internal/config"
	"github.com/sst/ghosttext/internal/format"
	"github.com/sst/ghosttext/internal/logging"
	"github.com/sst/ghosttext/internal/pubsub"
	"github.com/sst/ghosttext/internal/tui"
	"github.com/sst/ghosttext/internal/tui/theme"
	"github.com/sst/ghosttext/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ghosttext",
	Short: "Inline AI autocomplete for the terminal",
	Long: `ghosttext is a terminal text editor that suggests how your text continues.
Pause typing and a completion from the configured language model appears as
faded ghost text after the cursor. Press Tab to accept it or Esc to dismiss it.

Text piped on stdin or given with --prompt is completed once and printed.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If the help flag is set, show the help message
		if cmd.Flag("help").Changed {
			cmd.Help()
			return nil
		}
		if cmd.Flag("version").Changed {
			fmt.Println(version.Version)
			return nil
		}

		// Setup logging
		lvl := new(slog.LevelVar)
		textHandler := slog.NewTextHandler(logging.NewSlogWriter(), &slog.HandlerOptions{Level: lvl})
		slog.SetDefault(slog.New(textHandler))

		// Load the config
		debug, _ := cmd.Flags().GetBool("debug")
		cwd, _ := cmd.Flags().GetString("cwd")
		if cwd != "" {
			err := os.Chdir(cwd)
			if err != nil {
				return fmt.Errorf("failed to change directory: %v", err)
			}
		}
		if cwd == "" {
			c, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current working directory: %v", err)
			}
			cwd = c
		}
		cfg, err := config.Load(cwd, debug)
		if err != nil {
			return err
		}
		if cfg.Debug {
			lvl.Set(slog.LevelDebug)
		}
		if err := theme.SetMode(cfg.TUI.Theme); err != nil {
			slog.Warn("Failed to apply theme", "theme", cfg.TUI.Theme, "error", err)
		}

		// One-shot mode: --prompt or text piped on stdin
		prompt, _ := cmd.Flags().GetString("prompt")
		if prompt == "" {
			if piped, ok := checkStdinPipe(); ok {
				prompt = strings.TrimRight(piped, "\r\n")
			}
		}
		if prompt != "" {
			outputFormatStr, _ := cmd.Flags().GetString("output-format")
			outputFormat, err := format.Parse(outputFormatStr)
			if err != nil {
				return fmt.Errorf("invalid output format: %s", outputFormatStr)
			}

			quiet, _ := cmd.Flags().GetBool("quiet")
			verbose, _ := cmd.Flags().GetBool("verbose")

			return handleNonInteractiveMode(cmd.Context(), cfg, prompt, outputFormat, quiet, verbose, cmd.OutOrStdout())
		}

		// Create main context for the application
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		app, err := app.New(cfg)
		if err != nil {
			slog.Error("Failed to create app", "error", err)
			return err
		}

		// Set up the TUI
		zones := zone.New()
		defer zones.Close()
		program := tea.NewProgram(
			tui.New(ctx, app, zones),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		)

		// Forward service events to the TUI until it exits
		subCtx, cancelSubs := context.WithCancel(ctx)
		var subs errgroup.Group
		subs.Go(func() error { return forward(subCtx, "logging", app.Logs.Subscribe, program) })
		subs.Go(func() error { return forward(subCtx, "status", app.Status.Subscribe, program) })

		result, err := program.Run()

		cancelSubs()
		if waitErr := subs.Wait(); waitErr != nil {
			slog.Warn("subscription ended with error", "error", waitErr)
		}
		app.Shutdown()

		if err != nil {
			slog.Error("TUI error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}

		slog.Info("TUI exited", "result", result)
		return nil
	},
}

// sender is the part of *tea.Program the subscription pump needs.
type sender interface {
	Send(msg tea.Msg)
}

// forward pumps events from a service subscription into the program until
// ctx is canceled or the service shuts down.
func forward[T any](
	ctx context.Context,
	name string,
	subscribe func(context.Context) <-chan pubsub.Event[T],
	program sender,
) (err error) {
	defer logging.RecoverPanic(fmt.Sprintf("subscription-%s", name), func() {
		err = fmt.Errorf("subscription %s panicked", name)
	})

	subCh := subscribe(ctx)
	if subCh == nil {
		slog.Warn("subscription channel is nil", "name", name)
		return nil
	}

	for {
		select {
		case event, ok := <-subCh:
			if !ok {
				slog.Debug("subscription channel closed", "name", name)
				return nil
			}
			program.Send(event)
		case <-ctx.Done():
			slog.Debug("subscription cancelled", "name", name)
			return nil
		}
	}
}

// checkStdinPipe reads stdin when it is a pipe or a file rather than a
// terminal. It reports false when nothing was read.
func checkStdinPipe() (string, bool) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", false
	}
	if stat.Mode()&os.ModeCharDevice != 0 {
		return "", false
	}
	if stat.Mode()&os.ModeNamedPipe == 0 && stat.Size() == 0 {
		return "", false
	}

	done := make(chan []byte, 1)
	go func() {
		data, _ := io.ReadAll(os.Stdin)
		done <- data
	}()

	select {
	case data := <-done:
		if len(data) == 0 {
			return "", false
		}
		return string(data), true
	case <-time.After(stdinTimeout):
		return "", false
	}
}

const stdinTimeout = 2 * time.Second

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().BoolP("version", "v", false, "Version")
	rootCmd.Flags().BoolP("debug", "d", false, "Debug")
	rootCmd.Flags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.Flags().StringP("prompt", "p", "", "Complete the given text once and print the suggestion")
	rootCmd.Flags().StringP("output-format", "f", "text", "Output format for one-shot mode (text, json)")
	rootCmd.Flags().BoolP("quiet", "q", false, "Hide spinner in one-shot mode")
	rootCmd.Flags().BoolP("verbose", "", false, "Display logs to stderr in one-shot mode")
	rootCmd.Flags().String("provider", "", "Completion provider (anthropic, openai, gemini)")
	rootCmd.Flags().StringP("model", "m", "", "Model ID to complete with")

	// Make quiet and verbose mutually exclusive
	rootCmd.MarkFlagsMutuallyExclusive("quiet", "verbose")

	_ = viper.BindPFlag("provider", rootCmd.Flags().Lookup("provider"))
	_ = viper.BindPFlag("model", rootCmd.Flags().Lookup("model"))
}
