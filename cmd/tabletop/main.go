package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/tabletop/config"
	"github.com/lixenwraith/tabletop/core"
	"github.com/lixenwraith/tabletop/game"
)

var (
	configPath     string
	debugFlag      bool
	fpsFlag        int
	noAudioFlag    bool
	billboardFlag  bool
	cellAspectFlag float64
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabletop",
		Short: "A 3D card table in the terminal",
		Long: `Tabletop renders a board with two hands of cards and lets you pick up,
drag and drop your own cards with the mouse.

Controls:
  Left button  - Pick up and drag a card
  i            - Toggle the status rows
  q / Esc      - Quit

Settings come from defaults, then --config, then TABLETOP_* variables, then flags.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML settings file")
	flags.BoolVarP(&debugFlag, "debug", "d", false, "Write logs to logs/tabletop.log")
	flags.IntVar(&fpsFlag, "fps", 0, "Frames per second")
	flags.BoolVar(&noAudioFlag, "no-audio", false, "Disable sound cues")
	flags.BoolVar(&billboardFlag, "billboard-enemies", false, "Turn enemy cards toward the camera too")
	flags.Float64Var(&cellAspectFlag, "cell-aspect", 0, "Terminal cell height in units of its width")
	return cmd
}

// applyFlags overrides cfg with the flags given on the command line
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = debugFlag
	}
	if flags.Changed("fps") {
		cfg.FPS = fpsFlag
	}
	if flags.Changed("no-audio") {
		cfg.Audio = !noAudioFlag
	}
	if flags.Changed("billboard-enemies") {
		cfg.BillboardEnemyCards = billboardFlag
	}
	if flags.Changed("cell-aspect") {
		cfg.CellAspect = cellAspectFlag
	}
}

func run(cfg *config.Config) error {
	session := ulid.Make()
	if logFile := setupLogging(cfg.Debug, session.String()); logFile != nil {
		defer logFile.Close()
	}
	slog.Info("starting", "fps", cfg.FPS, "audio", cfg.Audio, "billboard_enemies", cfg.BillboardEnemyCards)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.SetCrashReset(screen.Fini)

	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	defer screen.Fini()

	g, err := game.New(screen, cfg)
	if err != nil {
		return err
	}
	defer g.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = g.Run(ctx)
	slog.Info("stopped", "error", err)
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tabletop: %v\n", err)
		os.Exit(1)
	}
}
