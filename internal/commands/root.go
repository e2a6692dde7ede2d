// Package commands provides CLI commands for ixview.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/ixview/internal/models"
	"github.com/diogo/ixview/internal/render"
	"github.com/diogo/ixview/internal/transcript"
	"github.com/diogo/ixview/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// NewRootCmd creates the root command and its subcommands.
func NewRootCmd(deps *Dependencies) *cobra.Command {
	flags := &globalFlags{}
	var (
		formatFlag  string
		versionFlag bool
	)

	cmd := &cobra.Command{
		Use:   "ixview [file]",
		Short: "Render IX agent task transcripts in the terminal",
		Long: `ixview renders the chat transcript of an IX agent task: every message is
drawn as an avatar and a content bubble whose body depends on the content
type (commands, executions, feedback, thoughts and so on).

Transcripts are JSON, JSONL or YAML files, or JSON read from stdin.

Examples:
  ixview task.json                      Render a transcript
  ixview task.jsonl --color-mode light  Render with the light theme
  cat task.json | ixview                Read the transcript from stdin
  ixview view task.json --watch         Interactive viewer, follows changes
  ixview export task.json -f markdown   Export as markdown`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				fmt.Fprintf(deps.Stdout, "ixview %s (built %s)\n", Version, BuildTime)
				return nil
			}

			if len(args) == 0 && !deps.StdinIsPipe() {
				return cmd.Help()
			}

			s, err := loadSettings(cmd, deps, flags)
			if err != nil {
				return err
			}
			if err := s.initLogger(""); err != nil {
				return err
			}
			defer func() { _ = s.logger.Sync() }()

			msgs, err := readTranscript(deps, args, formatFlag)
			if err != nil {
				return err
			}
			s.logger.Debug("transcript loaded",
				zap.Int("messages", len(msgs)),
				zap.String("mode", s.mode.String()),
				zap.String("policy", string(s.policy)))

			return runRender(deps, s, msgs)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.colorMode, "color-mode", "", "Color mode: light, dark or auto")
	pf.IntVar(&flags.width, "width", 0, "Terminal width in columns (0 detects)")
	pf.StringVar(&flags.missing, "missing", "", "Missing data policy: lenient, report or visible")
	pf.BoolVar(&flags.plain, "plain", false, "Disable colors and markdown rendering")
	pf.BoolVar(&flags.verbose, "verbose", false, "Enable debug logging")

	cmd.Flags().StringVar(&formatFlag, "format", string(transcript.FormatJSON), "Format of a transcript read from stdin: json, jsonl or yaml")
	cmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Show version and exit")

	cmd.AddCommand(NewViewCmd(deps, flags))
	cmd.AddCommand(NewExportCmd(deps, flags))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		tui.PrintError(err)
		os.Exit(1)
	}
}

// loadSettings loads the configuration and resolves it against the flags.
func loadSettings(cmd *cobra.Command, deps *Dependencies, flags *globalFlags) (*settings, error) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, err
	}
	return resolveSettings(cmd, deps, flags, cfg)
}

// runRender dispatches msgs and writes the frames to stdout. Under the
// report policy the frames that rendered are still written before the
// error is returned.
func runRender(deps *Dependencies, s *settings, msgs []models.Message) error {
	frames, renderErr := s.dispatcher().RenderAll(msgs, s.mode)

	out := s.terminal().RenderAll(frames)
	if _, err := fmt.Fprint(deps.Stdout, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if s.cfg.CopyToClipboard {
		copyToClipboard(deps, s, tui.PlainText(frames))
	}
	return renderErr
}

// copyToClipboard copies text, reporting the outcome on stderr without
// failing the command.
func copyToClipboard(deps *Dependencies, s *settings, text string) {
	theme := render.ThemeFor(s.mode)
	if err := deps.Clipboard(text); err != nil {
		fmt.Fprintln(deps.Stderr, styled(s, theme.Error, fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
		return
	}
	fmt.Fprintln(deps.Stderr, styled(s, theme.Success, "✓ Copied to clipboard"))
}

// readTranscript loads the file named by args, or decodes stdin in format.
func readTranscript(deps *Dependencies, args []string, format string) ([]models.Message, error) {
	if len(args) > 0 {
		return transcript.Load(args[0])
	}
	f, err := transcript.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return transcript.Decode(deps.Stdin, f)
}
