package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"CourseForge/internal/app/server"
	"CourseForge/internal/config"
	"CourseForge/internal/delivery/http"
	"CourseForge/internal/service"
	"CourseForge/internal/service/auth"
	"CourseForge/internal/service/authoring"
	"CourseForge/internal/service/outline"
	"CourseForge/internal/storage/elastic"
	"CourseForge/internal/storage/minio_storage"
	"CourseForge/internal/storage/postgres"
	"CourseForge/pkg/logger"
)

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	ctx := context.Background()

	pg, err := postgres.NewPostgresPool(ctx, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	esClient, err := elastic.NewElasticClient(cfg.ES.Password, cfg.ES.Hosts)
	if err != nil {
		log.FatalErr("error connecting to elasticsearch", err)
	}
	catalog := elastic.NewCatalogRepository(esClient, cfg.ES.Index)
	if err := catalog.CreateIndexIfNotExist(ctx); err != nil {
		log.FatalErr("error preparing catalog index", err)
	}

	minioClient, err := minio_storage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}
	mediaStorage, err := minio_storage.NewMediaStorage(minioClient, cfg.Minio.MediaBucket, cfg.Minio.PresignTTL)
	if err != nil {
		log.FatalErr("error preparing media bucket", err)
	}

	userRepo := postgres.NewUserPostgres(pg.Pool)
	tokenRepo := postgres.NewTokensPostgres(pg.Pool)
	courseRepo := postgres.NewCoursePostgres(pg.Pool)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, "courseforge", cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	authService := auth.NewAuthService(log, jwtManager, userRepo, tokenRepo)
	wizardService := authoring.NewWizardService(log, courseRepo, catalog)
	outlineService := outline.New(log, cfg.Outline.BaseURL, cfg.Outline.APIKey, cfg.Outline.Model, cfg.Outline.Timeout)

	u := service.Collection{
		AuthService:    authService,
		WizardService:  wizardService,
		OutlineService: outlineService,
		MediaStorage:   mediaStorage,
		Catalog:        catalog,
	}

	r := http.InitRoutes(log, u)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server stopped", err)
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
