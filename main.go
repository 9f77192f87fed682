package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/opsdeck/taskdeck/internal/board"
	"github.com/opsdeck/taskdeck/internal/core/config"
	"github.com/opsdeck/taskdeck/internal/core/logging"
	"github.com/opsdeck/taskdeck/internal/core/styles"
	"github.com/opsdeck/taskdeck/internal/tui"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

type flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	APIURL     string
	HubURL     string
	Theme      string
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return dir + "/taskdeck/config.yml"
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		cfg       *config.Config
	)

	f := &flags{}

	app := &cli.Command{
		Name:      "taskdeck",
		Usage:     "Terminal dashboard for the task management service",
		UsageText: "taskdeck [global options]",
		Description: `Taskdeck is a live dashboard over a task management REST API.

It shows tasks, workers, and statistics in three tabs, receives push
notifications from the server's websocket hub, and lets you create,
edit, and move tasks through their lifecycle without leaving the
terminal.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TASKDECK_LOG_LEVEL"),
				Value:       "info",
				Destination: &f.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("TASKDECK_LOG_FILE"),
				Destination: &f.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TASKDECK_CONFIG"),
				Value:       defaultConfigPath(),
				Destination: &f.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "api-url",
				Usage:       "base URL of the task management API",
				Sources:     cli.EnvVars("TASKDECK_API_URL"),
				Destination: &f.APIURL,
			},
			&cli.StringFlag{
				Name:        "hub-url",
				Usage:       "websocket URL of the notification hub (derived from api-url when empty)",
				Sources:     cli.EnvVars("TASKDECK_HUB_URL"),
				Destination: &f.HubURL,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "color theme (tokyo-night, gruvbox)",
				Sources:     cli.EnvVars("TASKDECK_THEME"),
				Destination: &f.Theme,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logging.New(f.LogLevel, f.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err = config.Load(f.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			// Flags win over file values.
			if f.APIURL != "" {
				cfg.API.BaseURL = f.APIURL
				cfg.Hub.URL = ""
			}
			if f.HubURL != "" {
				cfg.Hub.URL = f.HubURL
			}
			if f.Theme != "" {
				cfg.UI.Theme = f.Theme
			}
			if err := cfg.Reconcile(); err != nil {
				return ctx, fmt.Errorf("invalid config: %w", err)
			}

			palette, ok := styles.GetPalette(cfg.UI.Theme)
			if !ok {
				return ctx, fmt.Errorf("unknown theme %q (have: %v)", cfg.UI.Theme, styles.ThemeNames())
			}
			styles.SetTheme(palette)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 0 {
				return fmt.Errorf("unknown command %q. Run 'taskdeck --help' for usage", c.Args().First())
			}

			deck := board.NewApp(cfg)
			defer func() {
				if err := deck.Close(); err != nil {
					log.Debug().Err(err).Msg("close app")
				}
			}()

			model := tui.NewModel(deck)
			program := tea.NewProgram(model, tea.WithAltScreen())
			_, err := program.Run()
			return err
		},
	}

	exitCode := 0
	if runErr := app.Run(ctx, os.Args); runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
