package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/analyses"
	"portfolio-backend/internal/services/health"
	"portfolio-backend/internal/shared/config"
	"portfolio-backend/internal/shared/server"
	"portfolio-backend/internal/shared/storage/db"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	AnalysesRepo    analyses.Repo
	ResultCache     *analyses.ResultCache
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
	HealthService   *health.Service
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:   app.Config,
		Health:   app.HealthService,
		Handlers: []server.RouteRegistrar{app.AnalysisHandler},
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, err
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var repo analyses.Repo
	if app.DB != nil {
		repo = &analyses.PGRepo{DB: app.DB}
	} else {
		repo = analyses.NewMemoryRepo()
	}

	cache, err := analyses.NewResultCache(app.Config.ResultCacheSize)
	if err != nil {
		return fmt.Errorf("build result cache: %w", err)
	}

	svc := &analyses.Service{
		Repo:          repo,
		Cache:         cache,
		EngineVersion: app.Config.EngineVersion,
		MaxInputBytes: app.Config.MaxInputBytes,
	}

	app.AnalysesRepo = repo
	app.ResultCache = cache
	app.AnalysesService = svc
	app.AnalysisHandler = analyses.NewHandler(svc)
	app.HealthService = health.NewService(app.DB)
	return nil
}
