package app

import (
	"context"
	"fmt"
	"time"

	"github.com/thejerf/abtime"

	"blogsite/internal/config"
	"blogsite/internal/database"
	"blogsite/internal/logger"
	"blogsite/internal/repository"
	"blogsite/internal/service"
	"blogsite/internal/session"
	"blogsite/internal/storage"
)

// App holds the wired dependencies of the blog server.
type App struct {
	DB       *database.DB
	Repo     *repository.Repository
	Services *service.Service
	Sessions *session.Manager

	clock abtime.AbstractTime
}

// New connects to the database and, when enabled, the image store, then
// builds the repository, service and session layers on top of them.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	db, err := database.ConnectDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	clock := abtime.NewRealTime()

	var store storage.Storage
	if cfg.MinIO.Enabled {
		minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO, clock)
		if err != nil {
			db.CloseDB()
			return nil, fmt.Errorf("failed to initialize minio: %w", err)
		}
		store = minioClient
		log.Info("image uploads enabled", "endpoint", cfg.MinIO.Endpoint, "bucket", cfg.MinIO.BucketName)
	}

	repo := repository.NewRepository(db.DB)

	return &App{
		DB:       db,
		Repo:     repo,
		Services: service.NewService(repo, db, store, cfg, clock, log),
		Sessions: session.NewManager(repo.Session, repo.User, cfg.Session, clock, log),
		clock:    clock,
	}, nil
}

// sessionCleanupTicker identifies the cleanup ticker on the clock.
const sessionCleanupTicker = iota

type expiredSessionCleaner interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// StartSessionCleanup removes expired sessions every interval until ctx is done.
func (a *App) StartSessionCleanup(ctx context.Context, interval time.Duration, log *logger.Logger) <-chan struct{} {
	return startSessionCleanup(ctx, a.Sessions, a.clock, interval, log)
}

// startSessionCleanup registers the ticker before returning; the returned
// channel is closed once the loop has stopped.
func startSessionCleanup(
	ctx context.Context,
	sessions expiredSessionCleaner,
	clock abtime.AbstractTime,
	interval time.Duration,
	log *logger.Logger,
) <-chan struct{} {
	ticker := clock.NewTicker(interval, sessionCleanupTicker)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Channel():
				removed, err := sessions.CleanupExpired(ctx)
				if err != nil {
					log.Warn("failed to remove expired sessions", "error", err)
					continue
				}
				if removed > 0 {
					log.Debug("removed expired sessions", "count", removed)
				}
			}
		}
	}()

	return done
}

func (a *App) Close() error {
	return a.DB.CloseDB()
}
