package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/sadopc/unwind/internal/cli"
	"github.com/sadopc/unwind/internal/config"
	"github.com/sadopc/unwind/internal/logger"
	"github.com/sadopc/unwind/internal/notify"
	"github.com/sadopc/unwind/internal/session"
	"github.com/sadopc/unwind/internal/store"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" placeholder:"PATH"`
	Debug   bool   `help:"Write debug logs."`

	Tui           cli.TuiCmd           `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Checkin       cli.CheckinCmd       `cmd:"" help:"Record a stress check-in."`
	Recent        cli.RecentCmd        `cmd:"" help:"List recent check-ins."`
	Trends        cli.TrendsCmd        `cmd:"" help:"Show 7-day and time-of-day stress trends."`
	Suggest       cli.SuggestCmd       `cmd:"" help:"Suggest relief activities for a stress level."`
	Breathe       cli.BreatheCmd       `cmd:"" help:"Run the guided breathing cycle."`
	Export        cli.ExportCmd        `cmd:"" help:"Export check-ins to CSV or JSON."`
	Moods         cli.MoodsCmd         `cmd:"" help:"List mood tags and how often they were used."`
	Music         cli.MusicCmd         `cmd:"" help:"List curated calming music."`
	Nudge         cli.NudgeCmd         `cmd:"" help:"Refresh analytics and send a nudge if one applies."`
	Notifications cli.NotificationsCmd `cmd:"" help:"Manage predictive notifications."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("unwind"),
		kong.Description("Stress check-ins, guided relief and gentle nudges in the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fail(err)
	}

	logDir, err := cfg.LogDir()
	if err != nil {
		fail(err)
	}
	if err := logger.Init(logger.Config{
		Debug:    cfg.Log.Debug || CLI.Debug,
		Dir:      logDir,
		NoStderr: ctx.Command() == "tui",
	}); err != nil {
		fail(fmt.Errorf("init logger: %w", err))
	}

	logger.Debug("opening store", "postgres", config.IsPostgresDSN(cfg.Database.DSN))
	s, err := store.Open(cfg.Database.DSN)
	if err != nil {
		fail(fmt.Errorf("open database: %w", err))
	}
	defer s.Close()
	logger.Debug("store opened", "dialect", s.Dialect())

	n, err := notify.NewDesktop(context.Background(), s, cfg.Notifications.MinInterval)
	if err != nil {
		s.Close()
		fail(err)
	}

	appCtx := &cli.Context{
		Config:   cfg,
		Store:    s,
		Notifier: n,
		Session: session.New(s, n, session.Options{
			RecentLimit:    cfg.Insights.RecentLimit,
			NudgeThreshold: cfg.Insights.NudgeThreshold,
		}),
	}

	if err := ctx.Run(appCtx); err != nil {
		logger.Error("command failed", "command", ctx.Command(), "error", err)
		s.Close()
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, cli.Format(err))
	os.Exit(1)
}
