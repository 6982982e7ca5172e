package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"audit-backend/internal/audits"
	"audit-backend/internal/leads"
	"audit-backend/internal/notify"
	"audit-backend/internal/notify/archive"
	kafkasink "audit-backend/internal/notify/kafka"
	"audit-backend/internal/notify/sheets"
	"audit-backend/internal/notify/webhook"
	"audit-backend/internal/queue"
	"audit-backend/internal/services/health"
	"audit-backend/internal/shared/config"
	"audit-backend/internal/shared/server"
	"audit-backend/internal/shared/storage/db"
	"audit-backend/internal/shared/storage/object"
	localstore "audit-backend/internal/shared/storage/object/local"
	s3store "audit-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies and the HTTP router.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	DB           *sql.DB
	Store        object.ObjectStore
	Dispatcher   *notify.Dispatcher
	Queue        *queue.Publisher
	Publisher    notify.Publisher
	AuditsRepo   audits.Repo
	LeadsRepo    leads.Repo
	AuditService *audits.Service
	LeadService  *leads.Service
	AuditHandler *audits.Handler
	LeadHandler  *leads.Handler
	Health       *health.Service

	closers []func() error
}

// Build prepares shared dependencies and wires routes.
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

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	sinks, err := app.buildSinks(ctx)
	if err != nil {
		return nil, err
	}
	app.Dispatcher = notify.NewDispatcher(cfg.Sinks.Timeout, sinks...)

	app.Publisher = app.Dispatcher
	if strings.TrimSpace(cfg.SQSQueueURL) != "" {
		client, err := queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.SQSQueueURL)
		if err != nil {
			return nil, err
		}
		app.Queue = queue.NewPublisher(client)
		app.Publisher = app.Queue
	}

	buildServices(app)

	app.Health = health.NewService(app.DB, app.Queue != nil, app.Dispatcher.SinkNames())
	app.Router = server.NewRouter(server.RouterDeps{
		Config:       app.Config,
		Health:       app.Health,
		AuditHandler: app.AuditHandler,
		LeadHandler:  app.LeadHandler,
	})

	log.Printf("bootstrap: env=%s store=%s db=%t queue=%t sinks=%v",
		cfg.Env, cfg.ObjectStoreType, app.DB != nil, app.Queue != nil, app.Dispatcher.SinkNames())
	return app, nil
}

// Drain waits for background publishes to finish.
func (a *App) Drain(ctx context.Context) error {
	if a.Queue != nil {
		if err := a.Queue.Wait(ctx); err != nil {
			return err
		}
	}
	return a.Dispatcher.Wait(ctx)
}

// Close releases sink connections.
func (a *App) Close() error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return migrateOnBoot(ctx, cfg, sqlDB)
}

var runMigrations = db.RunMigrations

// migrateOnBoot applies migrations in dev, or anywhere DB_AUTO_MIGRATE is set.
// A failed migration in dev falls back to memory repositories.
func migrateOnBoot(ctx context.Context, cfg config.Config, sqlDB *sql.DB) (*sql.DB, error) {
	if !cfg.AutoMigrate && !isDevLike(cfg.Env) {
		return sqlDB, nil
	}
	if err := runMigrations(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			_ = sqlDB.Close()
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func (a *App) buildSinks(ctx context.Context) ([]notify.Sink, error) {
	sc := a.Config.Sinks
	var sinks []notify.Sink

	if hook := webhook.New(sc.AuditWebhookURL, sc.LeadWebhookURL, sc.Timeout); hook.Enabled() {
		sinks = append(sinks, hook)
	}

	if strings.TrimSpace(sc.Sheets.SpreadsheetID) != "" {
		sheet, err := sheets.New(ctx, sheets.Config{
			SpreadsheetID:       sc.Sheets.SpreadsheetID,
			Range:               sc.Sheets.Range,
			ServiceAccountEmail: sc.Sheets.ServiceAccountEmail,
			PrivateKey:          sc.Sheets.PrivateKey,
		})
		if err != nil {
			return nil, fmt.Errorf("sheets sink: %w", err)
		}
		sinks = append(sinks, sheet)
	}

	if len(sc.Kafka.Brokers) > 0 {
		producer, err := kafkasink.New(sc.Kafka.Brokers, sc.Kafka.Topic)
		if err != nil {
			return nil, fmt.Errorf("kafka sink: %w", err)
		}
		a.closers = append(a.closers, producer.Close)
		sinks = append(sinks, producer)
	}

	if sc.Archive {
		sinks = append(sinks, archive.New(a.Store))
	}
	return sinks, nil
}

func buildServices(app *App) {
	if app.DB != nil {
		app.AuditsRepo = &audits.PGRepo{DB: app.DB}
		app.LeadsRepo = &leads.PGRepo{DB: app.DB}
	} else {
		app.AuditsRepo = audits.NewMemoryRepo()
		app.LeadsRepo = leads.NewMemoryRepo()
	}

	app.AuditService = audits.NewService(app.AuditsRepo, app.Publisher)
	app.LeadService = leads.NewService(app.LeadsRepo, app.Publisher)
	app.AuditHandler = audits.NewHandler(app.AuditService, app.Config.BookingURL)
	app.LeadHandler = leads.NewHandler(app.LeadService)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
