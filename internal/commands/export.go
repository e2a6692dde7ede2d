package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/ixview/internal/render"
	"github.com/diogo/ixview/internal/transcript"
)

// NewExportCmd creates the export command
func NewExportCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	var (
		formatFlag string
		outputFlag string
		titleFlag  string
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a transcript as markdown or JSON",
		Long: `Export a transcript.

markdown writes every message as rendered by its view, with command output
in fenced code blocks. json writes the messages in the {"messages": [...]}
shape that ixview reads back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			format, err := transcript.ParseExportFormat(formatFlag)
			if err != nil {
				return err
			}
			s, err := loadSettings(cmd, deps, flags)
			if err != nil {
				return err
			}
			if err := s.initLogger(""); err != nil {
				return err
			}
			defer func() { _ = s.logger.Sync() }()

			msgs, err := transcript.Load(path)
			if err != nil {
				return err
			}

			title := titleFlag
			if title == "" {
				title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			data, err := transcript.Export(msgs, transcript.ExportOptions{
				Format:     format,
				Title:      title,
				Dispatcher: s.dispatcher(),
			})
			if err != nil {
				return err
			}

			if outputFlag == "" {
				_, err := deps.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(outputFlag, data, 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			fmt.Fprintln(deps.Stderr, styled(s, render.ThemeFor(s.mode).Success,
				fmt.Sprintf("✓ Exported %d messages to %s", len(msgs), outputFlag)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(transcript.ExportFormatMarkdown), "Export format: markdown or json")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVar(&titleFlag, "title", "", "Title for the export (default: file name)")
	return cmd
}
