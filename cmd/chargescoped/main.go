// Command chargescoped is the hosted ChargeScope service. It serves the
// analysis API over Postgres and blob storage, plus health and metrics
// endpoints.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chargescope/chargescope/internal/analysis"
	"github.com/chargescope/chargescope/internal/api"
	"github.com/chargescope/chargescope/internal/observability"
	"github.com/chargescope/chargescope/internal/platform"
	"github.com/chargescope/chargescope/internal/provider"
	"github.com/chargescope/chargescope/internal/store"
	"github.com/chargescope/chargescope/pkg/config"
)

func main() {
	cfg := loadConfig()

	port := envOrDefault("PORT", cfg.Server.Port)
	dbURL := envOrDefault("DATABASE_URL", cfg.Database.URL)
	apiKey := envOrDefault("CHARGESCOPE_API_KEY", cfg.Server.APIKey)

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	storage, err := newStorage(context.Background(), cfg)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}

	metrics := observability.NewMetrics()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	providers := provider.NewCachedDirectory(
		provider.Instrument(provider.FromConfig(cfg, logger), metrics),
		provider.CacheOptions{
			TTL:        time.Duration(cfg.Cache.TTLMinutes) * time.Minute,
			MaxEntries: cfg.Cache.MaxEntries,
			Metrics:    metrics,
		})

	rows := store.NewService(db)
	analyses := analysis.NewService(providers, analysis.Options{
		Store:         rows,
		Storage:       storage,
		Metrics:       metrics,
		EquityWeights: cfg.EquityWeights(),
		GlobalWeights: cfg.GlobalWeights(),
		POISampleSize: cfg.Scoring.POISampleSize,
	})

	apiMux := http.NewServeMux()
	api.NewHandler(rows, analyses, storage, nil).RegisterRoutes(apiMux)

	// Health and metrics stay open; the analysis API sits behind the key.
	mux := http.NewServeMux()
	mux.Handle("/api/v1/", api.APIKeyAuth(apiKey)(apiMux))
	mux.HandleFunc("GET /healthz", healthHandler(db))
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: api.CORS(mux),
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("starting chargescoped on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func loadConfig() *config.Config {
	path := os.Getenv("CHARGESCOPE_CONFIG")
	if path == "" {
		if cwd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(cwd)
		}
	}
	if path == "" {
		return config.DefaultConfig()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Printf("warning: failed to load config: %v", err)
		return config.DefaultConfig()
	}
	return cfg
}

// newStorage selects the report blob backend from config. Environment
// variables override the bucket settings for container deployments.
func newStorage(ctx context.Context, cfg *config.Config) (analysis.StorageClient, error) {
	backend := envOrDefault("STORAGE_BACKEND", cfg.Storage.Backend)
	switch backend {
	case "", "local":
		path := envOrDefault("LOCAL_STORAGE_PATH", cfg.Storage.LocalPath)
		if path == "" {
			path = config.DataDir()
		}
		return analysis.NewLocalStorage(path), nil
	case "s3":
		return analysis.NewS3Storage(ctx, analysis.S3Config{
			Bucket:    envOrDefault("S3_BUCKET", cfg.Storage.S3Bucket),
			Region:    envOrDefault("S3_REGION", cfg.Storage.S3Region),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		})
	case "gcs":
		return analysis.NewGCSStorage(ctx, envOrDefault("GCS_BUCKET", cfg.Storage.GCSBucket))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
