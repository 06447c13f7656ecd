package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/farxc/sil_dashboard/internal/db"
	"github.com/farxc/sil_dashboard/internal/env"
	"github.com/farxc/sil_dashboard/internal/logger"
	"github.com/farxc/sil_dashboard/internal/programacao/catalog"
	"github.com/farxc/sil_dashboard/internal/programacao/watch"
	"github.com/farxc/sil_dashboard/internal/store"
)

func main() {
	const component = "API"

	bootLogger := logger.New(logger.LevelInfo)
	if err := env.Load(); err != nil {
		bootLogger.Fatal(component, "Failed to read .env: %v", err)
	}

	cfg := config{
		addr:        env.GetString("ADDR", ":8080"),
		dataDir:     env.GetString("DATA_DIR", "./data"),
		catalogPath: env.GetString("CATALOG_PATH", ""),
		logLevel:    env.GetString("LOG_LEVEL", "info"),
		watch:       env.GetBool("WATCH_DATA_DIR", false),
		db: dbConfig{
			addr:         env.GetString("DB_ADDR", ""),
			maxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 25),
			maxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 25),
			maxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
	}

	appLogger := logger.New(logger.ParseLevel(cfg.logLevel))
	defer appLogger.Sync()

	cat := catalog.Default()
	if cfg.catalogPath != "" {
		loaded, err := catalog.Load(cfg.catalogPath)
		if err != nil {
			appLogger.Fatal(component, "Failed to load catalog: path=%s error=%v", cfg.catalogPath, err)
		}
		cat = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage := store.NewMemoryStorage()
	if cfg.db.addr != "" {
		conn, err := db.New(
			cfg.db.addr,
			cfg.db.maxOpenConns,
			cfg.db.maxIdleConns,
			cfg.db.maxIdleTime)
		if err != nil {
			appLogger.Fatal(component, "Failed to connect to database: %v", err)
		}
		defer conn.Close()
		if err := store.Migrate(ctx, conn); err != nil {
			appLogger.Fatal(component, "Failed to migrate database: %v", err)
		}
		appLogger.Info(component, "Database connection pool established")
		storage = store.NewStorage(conn)
	} else {
		appLogger.Info(component, "DB_ADDR not set, keeping ingestion history in memory")
	}

	app := &application{
		config:  cfg,
		store:   *storage,
		catalog: cat,
		logger:  appLogger,
	}

	if _, err := app.reload(ctx, store.TriggerTypeStartup); err != nil {
		appLogger.Warn(component, "Starting without a dataset: %v", err)
	}

	if cfg.watch {
		w, err := watch.New(cfg.dataDir, watch.DefaultDebounce, appLogger, func(ctx context.Context) {
			app.reload(ctx, store.TriggerTypeWatcher)
		})
		if err != nil {
			appLogger.Error(component, "Directory watcher disabled: %v", err)
		} else {
			go w.Run(ctx)
		}
	}

	mux := app.mount()

	if err := app.run(ctx, mux); err != nil {
		appLogger.Fatal(component, "Server error: %v", err)
	}
}
