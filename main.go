package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"actionpad/pkg/engine/devices"
	"actionpad/pkg/engine/host"
	"actionpad/pkg/engine/logger"
	"actionpad/pkg/game/config"
	"actionpad/pkg/game/gameplay"
	"actionpad/pkg/game/renderer"
	ebitenrenderer "actionpad/pkg/game/renderer/ebiten"
	"actionpad/pkg/game/renderer/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	settings, err := config.Load(config.NewFlagSet("actionpad"), args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	log, closeLog, err := initLogging(settings)
	if err != nil {
		return err
	}
	defer closeLog()

	profiles := config.DefaultProfiles()
	if settings.ProfilesFile != "" {
		if profiles, err = config.LoadProfiles(settings.ProfilesFile); err != nil {
			return err
		}
		log.Info("loaded profiles", "file", settings.ProfilesFile, "names", profiles.Names())
	}
	if settings.LocaleFile != "" {
		if err := renderer.LoadCatalog(settings.LocaleFile); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := host.New()
	opts := gameplay.Options{Profiles: profiles, Logger: log}

	var r renderer.Renderer
	switch settings.Mode {
	case config.ModeTerminal:
		r = tui.New()
	default:
		x, y := ebitenrenderer.JoystickCenter(settings.Joystick.Radius)
		opts.Pads = &devices.EbitenPads{}
		opts.Joystick = gameplay.JoystickLayout{X: x, Y: y, Settings: settings.Joystick}
		r = ebitenrenderer.New()
	}

	s, err := gameplay.NewSession(h, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	log.Info("starting", "mode", settings.Mode)
	return r.Run(ctx, s)
}

// initLogging installs the process logger. Terminal mode owns stdout and
// stderr, so without a log file it logs nowhere.
func initLogging(s *config.Settings) (*slog.Logger, func(), error) {
	cfg := logger.Config{Level: s.LogLevel, Format: s.LogFormat, Output: os.Stderr, Color: true}
	closeFn := func() {}
	switch {
	case s.LogFile != "":
		f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		cfg.Output = f
		cfg.Color = false
		closeFn = func() { f.Close() }
	case s.Mode == config.ModeTerminal:
		cfg.Output = io.Discard
	}
	return logger.Init(cfg), closeFn, nil
}
