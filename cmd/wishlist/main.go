package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Makepad-fr/wishlist/internal/api"
	"github.com/Makepad-fr/wishlist/internal/auth"
	"github.com/Makepad-fr/wishlist/internal/cli"
	"github.com/Makepad-fr/wishlist/internal/config"
	"github.com/Makepad-fr/wishlist/internal/logger"
	"github.com/Makepad-fr/wishlist/internal/prefs"
	"github.com/Makepad-fr/wishlist/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	apiURL := flag.String("api", "", "API base URL (overrides config)")
	cfgPath := flag.String("config", "", "path to a config.yaml")
	theme := flag.String("theme", "", "output theme: "+strings.Join(ui.Themes, "|"))
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.APIURL = strings.TrimRight(*apiURL, "/")
		if err := cfg.Validate(); err != nil {
			ui.Fail("config: " + err.Error())
			os.Exit(2)
		}
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	ui.SetTheme(cfg.Theme)
	ui.SetColorForcing(false, *noColor)

	log, err := logger.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		ui.Fail("logger: " + err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	creds := auth.NewStore(cfg.ConfigDir)
	code := cli.Run(ctx, args, cli.Options{
		Config: cfg,
		Log:    log,
		API:    api.NewClient(cfg.APIURL, cfg.Timeout, creds.Token()),
		Auth:   creds,
		Prefs:  prefs.NewStore(cfg.ConfigDir),
		In:     os.Stdin,
	})
	stop()
	_ = log.Sync()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
