package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/applications"
	googleauth "recruit-backend/internal/auth"
	"recruit-backend/internal/geocode"
	"recruit-backend/internal/llm"
	openai "recruit-backend/internal/llm/openai"
	"recruit-backend/internal/matching"
	"recruit-backend/internal/notify"
	"recruit-backend/internal/profiles"
	"recruit-backend/internal/shared/config"
	"recruit-backend/internal/shared/server"
	"recruit-backend/internal/shared/storage/db"
	"recruit-backend/internal/shared/storage/object"
	localstore "recruit-backend/internal/shared/storage/object/local"
	s3store "recruit-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies wired from configuration.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	ProfilesRepo     profiles.Repo
	ApplicationsRepo applications.Repo

	ProfilesService     *profiles.Service
	MatchingService     *matching.Service
	ApplicationsService *applications.Service

	ProfilesHandler     *profiles.Handler
	MatchingHandler     *matching.Handler
	ApplicationsHandler *applications.Handler
	GoogleAuth          *googleauth.GoogleService

	Notifier notify.Notifier
}

// Build prepares dependencies and the router from configuration.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	notifier, err := buildNotifier(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Notifier: notifier,
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       app.Config,
		Profiles:     app.ProfilesHandler,
		Matching:     app.MatchingHandler,
		Applications: app.ApplicationsHandler,
		GoogleAuth:   app.GoogleAuth,
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
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildNotifier(ctx context.Context, cfg config.Config) (notify.Notifier, error) {
	if strings.TrimSpace(cfg.NotifyQueueURL) == "" {
		return notify.LogNotifier{}, nil
	}
	return notify.NewSQSNotifier(ctx, cfg.AWSRegion, cfg.NotifyQueueURL)
}

func buildServices(app *App) error {
	var profilesRepo profiles.Repo
	var appsRepo applications.Repo
	if app.DB != nil {
		profilesRepo = profiles.NewPGRepo(app.DB)
		appsRepo = applications.NewPGRepo(app.DB)
	} else {
		profilesRepo = profiles.NewMemoryRepo()
		appsRepo = applications.NewMemoryRepo()
	}

	var geocoder geocode.Geocoder
	if strings.TrimSpace(app.Config.GeocoderBaseURL) != "" {
		gc, err := geocode.NewHTTPGeocoder(app.Config.GeocoderBaseURL, app.Config.GeocoderTimeout)
		if err != nil {
			return err
		}
		geocoder = gc
	}

	var llmClient llm.Client
	if app.Config.LLMProvider == "openai" && os.Getenv("OPENAI_API_KEY") != "" {
		client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel)
		if err != nil {
			return err
		}
		llmClient = client
	}

	profilesSvc := &profiles.Service{Repo: profilesRepo, Geocoder: geocoder}
	matchingSvc := &matching.Service{Profiles: profilesRepo, LLM: llmClient}
	appsSvc := applications.NewService(appsRepo, profilesRepo)

	app.ProfilesRepo = profilesRepo
	app.ApplicationsRepo = appsRepo
	app.ProfilesService = profilesSvc
	app.MatchingService = matchingSvc
	app.ApplicationsService = appsSvc
	app.ProfilesHandler = profiles.NewHandler(profilesSvc)
	app.MatchingHandler = matching.NewHandler(matchingSvc)
	app.ApplicationsHandler = applications.NewHandler(appsSvc, app.Notifier, app.Store)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
	)
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
