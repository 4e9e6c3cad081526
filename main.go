package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/khanghh/cas-portal/internal/config"
	"github.com/khanghh/cas-portal/internal/db"
	"github.com/khanghh/cas-portal/internal/gateway"
	"github.com/khanghh/cas-portal/internal/handlers"
	"github.com/khanghh/cas-portal/internal/middlewares"
	"github.com/khanghh/cas-portal/internal/middlewares/csrf"
	"github.com/khanghh/cas-portal/internal/middlewares/device"
	"github.com/khanghh/cas-portal/internal/middlewares/sessions"
	"github.com/khanghh/cas-portal/internal/prefs"
	"github.com/khanghh/cas-portal/internal/render"
	"github.com/khanghh/cas-portal/internal/store"
	"github.com/khanghh/cas-portal/params"
	"github.com/urfave/cli/v2"
)

var (
	app       *cli.App
	gitCommit string
	gitDate   string
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML or TOML config file",
		Value: "config.yaml",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
)

func init() {
	app = cli.NewApp()
	app.EnableBashCompletion = true
	app.Usage = "Login and registration portal"
	app.Flags = []cli.Flag{
		configFileFlag,
		debugFlag,
	}
	app.Commands = []*cli.Command{
		{
			Name:  "version",
			Usage: "Print version information",
			Action: func(ctx *cli.Context) error {
				fmt.Println(params.VersionWithCommit(gitCommit, gitDate))
				return nil
			},
		},
	}
	app.Action = run
}

func initLogger(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

func newPreferenceProvider(cfg *config.Config, backend *store.Backend) (prefs.Provider, error) {
	switch cfg.Preferences.Backend {
	case config.PrefsBackendRedis:
		return prefs.NewRedisProvider(backend.Redis, cfg.Preferences.KeyPrefix), nil
	case config.PrefsBackendMySQL:
		gormDB, err := db.Open(cfg.MySQL, cfg.Debug)
		if err != nil {
			return nil, err
		}
		return prefs.NewSQLProvider(gormDB), nil
	case config.PrefsBackendStorage:
		return prefs.NewKVProvider(backend.Storage, cfg.Preferences.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("%w: %s", prefs.ErrUnknownBackend, cfg.Preferences.Backend)
	}
}

func run(cliCtx *cli.Context) error {
	cfg, err := config.LoadConfig(cliCtx.String(configFileFlag.Name))
	if err != nil {
		slog.Error("Could not load config file.", "error", err)
		return err
	}
	cfg.Debug = cfg.Debug || cliCtx.IsSet(debugFlag.Name)
	initLogger(cfg.Debug)

	backend := store.NewBackend(cfg.RedisURL)
	defer backend.Close()

	sessionStore := session.New(session.Config{
		Storage:        store.NewKVStorage(backend.Storage, "session:"),
		Expiration:     cfg.Session.SessionMaxAge,
		KeyLookup:      "cookie:" + cfg.Session.CookieName,
		CookieHTTPOnly: cfg.Session.CookieHttpOnly,
		CookieSecure:   cfg.Session.CookieSecure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})

	provider, err := newPreferenceProvider(cfg, backend)
	if err != nil {
		slog.Error("Could not initialize preference store.", "backend", cfg.Preferences.Backend, "error", err)
		return err
	}

	gw, err := gateway.NewSimulated(gateway.SimulatedConfig{
		LoginDelay:    cfg.Gateway.LoginDelay,
		RegisterDelay: cfg.Gateway.RegisterDelay,
		TokenSecret:   cfg.Gateway.TokenSecret,
		TokenTTL:      cfg.Gateway.TokenTTL,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	views := handlers.NewFormViews(gw, provider, cfg.Gateway.TokenSecret)
	go views.RunSweeper(ctx, params.ViewSweepInterval, params.ViewIdleTimeout)

	render.InitValues(fiber.Map{"siteName": cfg.AppName})
	router := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    params.ServerBodyLimit,
		IdleTimeout:  params.ServerIdleTimeout,
		ReadTimeout:  params.ServerReadTimeout,
		WriteTimeout: params.ServerWriteTimeout,
		ErrorHandler: middlewares.ErrorHandler,
		Views:        render.NewHtmlEngine(cfg.TemplateDir),
	})
	router.Static("/static", cfg.StaticDir)
	router.Use(device.New(device.Config{
		CookieName:   params.DeviceCookieName,
		CookieSecure: cfg.Session.CookieSecure,
		MaxAge:       params.DeviceCookieMaxAge,
	}))
	router.Use(sessions.SessionMiddleware(sessionStore))
	router.Use(csrf.New())
	handlers.SetupRoutes(router, views)

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down server")
		if err := router.Shutdown(); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting portal server", "address", cfg.ListenAddr, "preferences", cfg.Preferences.Backend)
	return router.Listen(cfg.ListenAddr)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
