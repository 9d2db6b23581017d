package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"image-player/config"
)

const defaultConfigPath = "~/.config/image-player/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "settings file")
	writeConfig := flag.String("write-config", "", "write the effective settings to `file` and exit")
	script := flag.String("script", "", "Starlark view script run after loading")
	watch := flag.Bool("watch", false, "reload the image when it changes on disk")
	reload := flag.String("reload", "", "view on reload: preserve or reset")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: image-player [flags] FILE\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("loading config", err)
	}
	if err := applyFlags(&cfg, *script, *watch, *reload); err != nil {
		fatal("invalid flags", err)
	}

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *writeConfig != "" {
		if err := config.Save(cfg, *writeConfig); err != nil {
			fatal("writing config", err)
		}
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	game, err := NewGame(cfg, flag.Arg(0))
	if err != nil {
		fatal("opening image", err)
	}
	defer game.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(game); err != nil {
		fatal("running", err)
	}
}

// applyFlags lets command-line flags override the settings file.
func applyFlags(cfg *config.Config, script string, watch bool, reload string) error {
	if script != "" {
		cfg.Script = script
	}
	if watch {
		cfg.Watch = true
	}
	if reload != "" {
		policy, err := config.ParseReloadPolicy(reload)
		if err != nil {
			return err
		}
		cfg.View.Reload = policy
	}
	return nil
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
