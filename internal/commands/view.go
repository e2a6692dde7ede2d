package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/ixview/internal/config"
	"github.com/diogo/ixview/internal/logging"
	"github.com/diogo/ixview/internal/models"
	"github.com/diogo/ixview/internal/transcript"
	"github.com/diogo/ixview/internal/tui"
)

// NewViewCmd creates the interactive viewer command
func NewViewCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	var watchFlag bool

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Open a transcript in the interactive viewer",
		Long: `Open a transcript in a scrollable viewer.

Keys: t toggles light/dark, c copies the transcript as plain text,
r reloads the file, q or esc quits. With --watch the viewer reloads
whenever the file changes.

Logs go to the file named by log_file in the config, or ixview.log in
the config directory, so they do not disturb the screen.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			s, err := loadSettings(cmd, deps, flags)
			if err != nil {
				return err
			}
			if _, err := config.EnsureConfigDir(); err != nil {
				return err
			}
			logPath, err := config.GetLogPath(s.cfg)
			if err != nil {
				return err
			}
			// An unwritable log file must not keep the viewer from starting.
			s.logger = logging.NewOrNop(logging.Options{Verbose: s.cfg.Verbose, File: logPath})
			defer func() { _ = s.logger.Sync() }()

			msgs, err := transcript.Load(path)
			if err != nil {
				return err
			}

			opts := tui.Options{
				Title:      filepath.Base(path),
				Messages:   msgs,
				Mode:       s.mode,
				Dispatcher: s.dispatcher(),
				Terminal:   s.terminal(),
				Load:       func() ([]models.Message, error) { return transcript.Load(path) },
				Clipboard:  deps.Clipboard,
				Logger:     s.logger,
			}

			if watchFlag {
				w, err := transcript.NewWatcher(path, transcript.WithWatchLogger(s.logger))
				if err != nil {
					return err
				}
				if err := w.Start(cmd.Context()); err != nil {
					return err
				}
				defer w.Stop()
				opts.Updates = w.Updates()
			}

			s.logger.Info("opening viewer",
				zap.String("path", path),
				zap.Int("messages", len(msgs)),
				zap.Bool("watch", watchFlag))

			if err := deps.RunViewer(opts); err != nil {
				return fmt.Errorf("viewer: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Reload when the file changes")
	return cmd
}
