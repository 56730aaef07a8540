package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/frictionlab/internal/config"
	"github.com/olivier-w/frictionlab/internal/friction"
	"github.com/olivier-w/frictionlab/internal/observability"
	"github.com/olivier-w/frictionlab/internal/sound"
	"github.com/olivier-w/frictionlab/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds state shared by every subcommand.
type app struct {
	cfgFile  string
	logLevel string
	cfg      *config.Config
}

func (a *app) load() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logger.Level = a.logLevel
	}
	a.cfg = cfg
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		surface   string
		withSound bool
	)
	root := &cobra.Command{
		Use:           "frictionlab",
		Short:         "Pull a block across a surface and measure friction.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(surface, withSound)
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./frictionlab.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logger.level")
	root.Flags().StringVarP(&surface, "surface", "s", "", "surface to start on")
	root.Flags().BoolVar(&withSound, "sound", false, "click when the block breaks free")

	root.AddCommand(newSimulateCmd(a), newSurfacesCmd(a))
	return root
}

func (a *app) runTUI(surface string, withSound bool) error {
	cfg := a.cfg
	if surface != "" {
		if _, err := cfg.Trial(surface); err != nil {
			return err
		}
		cfg.DefaultSurface = surface
	}

	// The TUI owns the terminal, so logs only go to the file.
	logCfg := cfg.Logger
	if logCfg.LogFile == "" {
		logCfg.LogFile = filepath.Join(os.TempDir(), "frictionlab.log")
	}
	observability.Initialize(logCfg, zapcore.AddSync(io.Discard))
	defer observability.Sync()
	log := observability.GetLogger()

	params, err := cfg.Params()
	if err != nil {
		return err
	}
	trials, err := cfg.Trials()
	if err != nil {
		return err
	}

	opts := ui.Options{
		CellWidth:     cfg.UI.CellWidth,
		FPS:           cfg.UI.FPS,
		ToastDuration: cfg.UI.ToastDuration,
		PulseDuration: cfg.UI.PulseDuration,
		Logger:        log.Named("ui"),
	}
	if withSound || cfg.Audio.Enabled {
		c, err := sound.New(cfg.Audio.Frequency, cfg.Audio.Duration, cfg.Audio.Volume)
		if err != nil {
			log.Warn("audio unavailable, continuing without sound", zap.Error(err))
		} else {
			defer c.Close()
			opts.Clicker = c
		}
	}

	s := friction.NewSession(params, friction.WithLogger(log.Named("session")))
	log.Info("starting bench",
		zap.Stringer("surface", params.Default.Surface),
		zap.Int("surfaces", len(trials)))

	program := tea.NewProgram(ui.New(s, trials, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	log.Info("bench closed", zap.Int("rows", len(s.Rows())))
	return nil
}
