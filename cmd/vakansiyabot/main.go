package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"log/slog"

	coreconfig "github.com/sardorasatov93-code/Vakansiya-bot/core/config"
	"github.com/sardorasatov93-code/Vakansiya-bot/core/database"
	"github.com/sardorasatov93-code/Vakansiya-bot/core/logger"
	tg "github.com/sardorasatov93-code/Vakansiya-bot/core/telegram"
	"github.com/sardorasatov93-code/Vakansiya-bot/internal/app"
	"github.com/sardorasatov93-code/Vakansiya-bot/internal/catalog"
)

const defaultConfigPath = "config.yaml"

func main() {
	if err := run(); err != nil {
		log.Fatalf("vakansiyabot: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}

	cfg, err := coreconfig.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.InitLogger(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	store, err := buildStore(cfg)
	if err != nil {
		return err
	}

	application := app.New(cfg, store)

	reg := tg.NewRegistry()
	if err := application.Register(reg); err != nil {
		return fmt.Errorf("register handlers: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	startedAt := time.Now()
	runOpts := tg.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(cfg, nil),
		Routes:      application.Routes(reg),
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			ttl := time.Duration(cfg.Bot.SessionTTLMinutes) * time.Minute
			application.Sessions().StartSweeper(ctx, ttl)
			logger.L.With("component", "app").Info("app ready",
				slog.String("event", "ready"),
				slog.String("document_mode", cfg.Bot.DocumentMode),
				slog.String("catalog_backend", cfg.Catalog.Backend),
				slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
			)
			return nil
		},
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			logger.L.With("component", "app").Info("shutting down...",
				slog.String("event", "shutdown"),
			)
			return nil
		},
	}

	return tg.RunTelegram(ctx, runOpts)
}

// buildStore selects the catalog backend. The file backend is the default;
// Postgres is opted into via catalog.backend and gets migrations applied
// before use.
func buildStore(cfg *coreconfig.Config) (catalog.Store, error) {
	if cfg.Catalog.Backend != coreconfig.CatalogBackendPostgres {
		return catalog.NewFileStore(cfg.Catalog.File), nil
	}

	dbCfg := database.Config{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Name:           cfg.Database.Name,
		SSLMode:        cfg.Database.SSLMode,
		MaxConnections: cfg.Database.MaxConnections,
	}
	if err := database.RunMigrations(dbCfg); err != nil {
		return nil, fmt.Errorf("migrate catalog schema: %w", err)
	}
	db, err := database.Connect(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("connect catalog database: %w", err)
	}
	return catalog.NewPGStore(db), nil
}
