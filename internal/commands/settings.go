package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/ixview/internal/config"
	"github.com/diogo/ixview/internal/logging"
	"github.com/diogo/ixview/internal/render"
	"github.com/diogo/ixview/internal/termrender"
	"github.com/diogo/ixview/internal/view"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	colorMode string
	width     int
	missing   string
	plain     bool
	verbose   bool
}

// settings is the effective configuration of one invocation: the config
// file, then environment, then flags.
type settings struct {
	cfg    config.Config
	mode   render.ColorMode
	width  int
	policy view.MissingPolicy
	plain  bool
	logger *zap.Logger
}

// resolveSettings merges flags explicitly set on cmd over cfg.
func resolveSettings(cmd *cobra.Command, deps *Dependencies, flags *globalFlags, cfg config.Config) (*settings, error) {
	changed := cmd.Flags().Changed

	if changed("color-mode") {
		cfg.ColorMode = flags.colorMode
	}
	if changed("width") {
		cfg.Width = flags.width
	}
	if changed("missing") {
		cfg.MissingPolicy = flags.missing
	}
	if changed("verbose") {
		cfg.Verbose = flags.verbose
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mode, err := render.ResolveColorMode(cfg.ColorMode)
	if err != nil {
		return nil, err
	}
	policy, err := view.ParseMissingPolicy(cfg.MissingPolicy)
	if err != nil {
		return nil, err
	}

	width := cfg.Width
	if width == 0 {
		width = deps.TerminalWidth()
	}

	return &settings{
		cfg:    cfg,
		mode:   mode,
		width:  width,
		policy: policy,
		plain:  flags.plain || !deps.StdoutIsTTY(),
		logger: zap.NewNop(),
	}, nil
}

// initLogger builds the logger. Output goes to stderr unless file is set.
func (s *settings) initLogger(file string) error {
	logger, err := logging.New(logging.Options{Verbose: s.cfg.Verbose, File: file})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	s.logger = logger
	return nil
}

func (s *settings) dispatcher() *view.Dispatcher {
	return view.NewDispatcher(
		view.WithMissingPolicy(s.policy),
		view.WithLogger(s.logger),
	)
}

func (s *settings) terminal() termrender.Terminal {
	return termrender.Terminal{
		Width:   s.width,
		Options: render.OptionsFromConfig(s.cfg),
		Plain:   s.plain,
	}
}
