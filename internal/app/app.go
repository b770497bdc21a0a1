package app

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	httpapp "listing_editor/internal/app/http"
	"listing_editor/internal/clients/estateapi"
	"listing_editor/internal/config"
	"listing_editor/internal/lib/assets"
	"listing_editor/internal/lib/logger/sl"
	"listing_editor/internal/repository"
	catalog "listing_editor/internal/services/catalog_service"
	"listing_editor/internal/services/editor"
	"listing_editor/internal/services/validation"
	"listing_editor/internal/storage"
	"listing_editor/internal/storage/filestorage"
	"listing_editor/internal/storage/postgresql"
	redisapp "listing_editor/internal/storage/redis"
	httprouters "listing_editor/internal/transport/http"
)

// запас под текстовые поля multipart формы
const uploadOverhead = 1 << 20

type App struct {
	HTTPServer *httpapp.Server
	Editor     *editor.Service

	log   *slog.Logger
	pg    *postgresql.Storage
	redis *redisapp.Client
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) *App {
	a := &App{log: log}

	api := estateapi.New(log, cfg.EstateAPI.BaseURL, cfg.EstateAPI.Timeout)
	resolver := assets.NewResolver(cfg.Assets.BaseURL)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir)
	if err != nil {
		panic(err)
	}

	var catalogCache repository.CatalogCache
	redisClient, err := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
	switch {
	case errors.Is(err, storage.ErrNotConfigured):
		log.Info("redis not configured, catalogs cached in memory")
		catalogCache = repository.NewMemoryCatalogCache(cfg.Redis.CatalogTTL)
	case err != nil:
		panic(err)
	default:
		if err := redisClient.HealthCheck(ctx); err != nil {
			log.Warn("redis is not reachable yet", sl.Err(err))
		}
		a.redis = redisClient
		catalogCache = repository.NewRedisCatalogCache(redisClient, cfg.Redis.CatalogTTL)
	}

	var submissions repository.SubmissionRepository = repository.NopSubmissionRepo{}
	pg, err := postgresql.New(ctx, cfg.DSN)
	switch {
	case errors.Is(err, storage.ErrNotConfigured):
		log.Info("dsn not configured, submission history disabled")
	case err != nil:
		panic(err)
	default:
		if err := pg.Migrate(ctx); err != nil {
			panic(err)
		}
		a.pg = pg
		submissions = repository.NewRepository(pg.Pool()).Submissions
	}

	validator := validation.New(
		validation.WithMaxImages(cfg.Editor.MaxImages),
		validation.WithMaxImageSize(cfg.Editor.MaxImageSize),
	)
	coordinator := editor.NewCoordinator(log, validator, api, submissions, cfg.Editor.SubmitTimeout)
	a.Editor = editor.NewService(log, api, fileStorage, validator, coordinator, submissions, resolver, cfg.Editor.SessionTTL)

	catalogs := catalog.NewCatalogService(log, api, catalogCache)

	routers := httprouters.NewRouter(log, a.Editor, catalogs)
	a.HTTPServer = httpapp.New(log, httpapp.Options{
		Host:          cfg.HTTP.Host,
		Port:          cfg.HTTP.Port,
		ReadTimeout:   cfg.HTTP.ReadTimeout,
		SessionSecret: cfg.HTTP.SessionSecret,
		AllowOrigins:  cfg.HTTP.AllowOrigins,
		IdentityTTL:   cfg.Editor.SessionTTL,
		BodyLimit:     bodyLimit(cfg.Editor.MaxImages, cfg.Editor.MaxImageSize),
	}, routers, api)

	return a
}

// Stop закрывает сессии редактора и соединения с хранилищами.
func (a *App) Stop() {
	const op = "app.Stop"

	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("failed to stop http server", slog.String("op", op), sl.Err(err))
	}

	a.Editor.Shutdown()

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("failed to close redis", slog.String("op", op), sl.Err(err))
		}
	}
	if a.pg != nil {
		a.pg.Stop()
	}
}

func bodyLimit(maxImages int, maxImageSize int64) string {
	if maxImages <= 0 {
		maxImages = validation.DefaultMaxImages
	}
	if maxImageSize <= 0 {
		maxImageSize = validation.DefaultMaxImageSize
	}
	// лишний файл должен дойти до валидатора, а не упасть на лимите
	limit := int64(maxImages+1)*maxImageSize + uploadOverhead
	return strconv.FormatInt(limit/1024+1, 10) + "K"
}
