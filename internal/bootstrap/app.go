package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"fleet-backend/internal/approvals"
	"fleet-backend/internal/photos"
	"fleet-backend/internal/servicerequests"
	"fleet-backend/internal/services/health"
	"fleet-backend/internal/shared/auth"
	"fleet-backend/internal/shared/config"
	"fleet-backend/internal/shared/server"
	"fleet-backend/internal/shared/storage/db"
	"fleet-backend/internal/shared/storage/object"
	localstore "fleet-backend/internal/shared/storage/object/local"
	s3store "fleet-backend/internal/shared/storage/object/s3"
	"fleet-backend/internal/shared/telemetry"
	"fleet-backend/internal/vehicles"
	"fleet-backend/internal/webhook"
)

// App holds shared dependencies and the configured router.
type App struct {
	Config                 config.Config
	Router                 *gin.Engine
	DB                     *sql.DB
	Store                  object.ObjectStore
	Sink                   webhook.Sink
	JobsRepo               approvals.Repo
	VehiclesRepo           vehicles.Repo
	ServiceRequestsRepo    servicerequests.Repo
	JobsService            *approvals.Service
	VehiclesService        *vehicles.Service
	ServiceRequestsService *servicerequests.Service
	PhotosService          *photos.Service
	JobsHandler            *approvals.Handler
	VehiclesHandler        *vehicles.Handler
	ServiceRequestsHandler *servicerequests.Handler
	PhotosHandler          *photos.Handler
}

// Build prepares shared dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	secret, err := auth.Secret(cfg.Env, cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sink, err := buildSink(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Sink:   sink,
	}

	if err := buildRepos(ctx, app); err != nil {
		return nil, err
	}
	buildServices(app)
	if cfg.SeedDemoData {
		if err := seedPhotos(ctx, app); err != nil {
			return nil, err
		}
	}

	deps := server.RouterDeps{
		Config:                 app.Config,
		JWTSecret:              secret,
		JobsHandler:            app.JobsHandler,
		VehiclesHandler:        app.VehiclesHandler,
		ServiceRequestsHandler: app.ServiceRequestsHandler,
		PhotosHandler:          app.PhotosHandler,
	}
	if sqlDB != nil {
		deps.Health = health.NewService(sqlDB)
	}
	app.Router = server.NewRouter(deps)

	return app, nil
}

// Close releases the database pool if one was opened.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{
				"reason": "database unavailable",
				"error":  err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildSink(cfg config.Config) (webhook.Sink, error) {
	if strings.TrimSpace(cfg.WebhookURL) == "" {
		return webhook.LogSink{}, nil
	}
	return webhook.NewHTTPSink(cfg.WebhookURL, cfg.WebhookTimeout)
}

func buildRepos(ctx context.Context, app *App) error {
	var (
		jobSeed     []approvals.Job
		vehicleSeed []vehicles.Vehicle
	)
	if app.Config.SeedDemoData {
		jobSeed = approvals.SeedJobs()
		vehicleSeed = vehicles.SeedVehicles()
	}

	if app.DB == nil {
		jobs, err := approvals.NewMemoryRepo(jobSeed)
		if err != nil {
			return fmt.Errorf("seed jobs: %w", err)
		}
		app.JobsRepo = jobs
		app.VehiclesRepo = vehicles.NewMemoryRepo(vehicleSeed)
		app.ServiceRequestsRepo = servicerequests.NewMemoryRepo()
		return nil
	}

	jobs := &approvals.PGRepo{DB: app.DB}
	roster := &vehicles.PGRepo{DB: app.DB}
	if app.Config.SeedDemoData {
		if err := roster.Seed(ctx, vehicleSeed); err != nil {
			return fmt.Errorf("seed vehicles: %w", err)
		}
		if err := jobs.Seed(ctx, jobSeed); err != nil {
			return fmt.Errorf("seed jobs: %w", err)
		}
	}
	app.JobsRepo = jobs
	app.VehiclesRepo = roster
	app.ServiceRequestsRepo = &servicerequests.PGRepo{DB: app.DB}
	return nil
}

func buildServices(app *App) {
	app.VehiclesService = vehicles.NewService(app.VehiclesRepo)
	app.JobsService = approvals.NewService(app.JobsRepo, vehicleLookupAdapter{svc: app.VehiclesService})
	app.ServiceRequestsService = servicerequests.NewService(app.ServiceRequestsRepo, app.VehiclesService, app.Sink)
	app.PhotosService = photos.NewService(app.Store)

	app.VehiclesHandler = vehicles.NewHandler(app.VehiclesService)
	app.JobsHandler = approvals.NewHandler(app.JobsService)
	app.ServiceRequestsHandler = servicerequests.NewHandler(app.ServiceRequestsService)
	app.PhotosHandler = photos.NewHandler(app.PhotosService)
}

// seedPhotos backs every demo photoUrl with a placeholder image so the
// seeded jobs render on a fresh store.
func seedPhotos(ctx context.Context, app *App) error {
	var ids []string
	for _, job := range approvals.SeedJobs() {
		for _, rec := range job.Recommendations {
			if rec.PhotoURL == photos.URL(rec.ID) {
				ids = append(ids, rec.ID)
			}
		}
	}
	written, err := app.PhotosService.SeedPlaceholders(ctx, ids)
	if err != nil {
		return fmt.Errorf("seed photos: %w", err)
	}
	if len(written) > 0 {
		telemetry.Info("bootstrap.photos_seeded", map[string]any{"recommendation_ids": written})
	}
	return nil
}

type vehicleLookupAdapter struct {
	svc *vehicles.Service
}

func (a vehicleLookupAdapter) FindVehicleByID(ctx context.Context, id string) (approvals.VehicleSummary, bool) {
	v, ok := a.svc.FindVehicleByID(ctx, id)
	if !ok {
		return approvals.VehicleSummary{}, false
	}
	return approvals.VehicleSummary{
		ID:           v.ID,
		Name:         v.Name,
		VIN:          v.VIN,
		Year:         v.Year,
		Make:         v.Make,
		Model:        v.Model,
		LicensePlate: v.LicensePlate,
	}, true
}
