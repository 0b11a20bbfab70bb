package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"queue-sim-service/internal/adapters/repositories"
	"queue-sim-service/internal/api"
	"queue-sim-service/internal/config"
	"queue-sim-service/internal/domain"
	"queue-sim-service/internal/platform/db"
	"queue-sim-service/internal/ports"
	"queue-sim-service/internal/ws"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	dbPath := config.Get("DB_PATH", "data/qsim.db")
	databaseURL := config.Get("DATABASE_URL", "")
	tablesPath := config.Get("TABLES_PATH", "")
	rateLimit := config.GetInt("RATE_LIMIT_PER_MINUTE", 60)
	redisAddr := config.Get("RATE_LIMIT_REDIS_ADDR", "")
	redisPassword := config.Get("RATE_LIMIT_REDIS_PASSWORD", "")
	redisDB := config.GetInt("RATE_LIMIT_REDIS_DB", 0)
	watchEnabled := config.GetBool("WATCH_ENABLED", true)
	watchBuffer := config.GetInt("WATCH_BUFFER", 16)
	shutdownTimeout := time.Duration(config.GetInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tables, err := loadTables(tablesPath)
	if err != nil {
		log.Fatal(err)
	}

	archive, sqlDB, err := openArchive(ctx, databaseURL, dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	limiter := api.NewMemoryRateLimiter()
	if addr := strings.TrimSpace(redisAddr); addr != "" {
		redisLimiter, err := api.NewRedisRateLimiter(addr, redisPassword, redisDB)
		if err != nil {
			log.Printf("redis rate limiter unavailable, using in-memory limiter: %v", err)
		} else {
			limiter.Close()
			limiter = redisLimiter
		}
	}
	defer limiter.Close()

	var hub *ws.Hub
	if watchEnabled {
		hub = ws.NewHub()
		defer hub.Shutdown()
	} else {
		log.Println("Watch stream disabled")
	}

	router := api.NewRouter(api.RouterDeps{
		Archive:            archive,
		Tables:             tables,
		Hub:                hub,
		Limiter:            limiter,
		RateLimitPerMinute: rateLimit,
		WatchBuffer:        watchBuffer,
	})

	// No WriteTimeout: /watch streams over a long-lived connection.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s", port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("graceful shutdown failed: %v", err)
		}
		log.Println("Server stopped")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}
}

func loadTables(path string) (domain.TablePair, error) {
	if path == "" {
		return domain.DefaultTables(), nil
	}
	tables, err := config.LoadTables(path)
	if err != nil {
		return domain.TablePair{}, err
	}
	log.Printf("Loaded distribution tables path=%s", path)
	return tables, nil
}

// openArchive picks the run archive backend: Postgres when
// DATABASE_URL is set, a local SQLite file otherwise.
func openArchive(ctx context.Context, databaseURL, dbPath string) (ports.RunArchive, *sql.DB, error) {
	if databaseURL != "" {
		sqlDB, err := db.Open(ctx, databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitPostgresSchema(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		log.Println("Run archive backend=postgres")
		return repositories.NewSQLRunArchive(sqlDB), sqlDB, nil
	}

	sqlDB, err := db.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.InitSchema(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	log.Printf("Run archive backend=sqlite path=%s", dbPath)
	return repositories.NewSqliteRunArchive(sqlDB), sqlDB, nil
}
