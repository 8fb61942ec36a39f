package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"school-cms/internal/auth"
	"school-cms/internal/config"
	"school-cms/internal/domain"
	apphttp "school-cms/internal/http"
	"school-cms/internal/repository"
	"school-cms/internal/repository/sqlite"
	"school-cms/internal/service"
	"school-cms/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	codec, err := auth.NewTokenCodec(cfg.Auth.JWTSecret, nil)
	if err != nil {
		logger.Fatalf("token codec: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The database may be unavailable (misconfiguration, first boot on a
	// read-only volume). The service still starts in degraded mode: static
	// endpoints keep working and store-backed ones answer 503.
	var db *sql.DB
	if cfg.Database.Path != "" {
		db, err = sqlite.Open(cfg.Database.Path)
		if err != nil {
			logger.Warnf("open database: %v (running in degraded mode)", err)
			db = nil
		}
	} else {
		logger.Warn("database path not set, running in degraded mode")
	}
	if db != nil {
		defer db.Close()
	}

	var (
		contentSvc service.ContentService
		loginSvc   *auth.Service
		resolver   *auth.IdentityResolver
	)
	if db != nil {
		userRepo := sqlite.NewUserRepository(db)
		blogRepo := sqlite.NewBlogRepository(db)
		eventRepo := sqlite.NewEventRepository(db)
		contactRepo := sqlite.NewContactRepository(db)

		if err := userRepo.Init(ctx); err != nil {
			logger.Fatalf("init user repository: %v", err)
		}
		if err := blogRepo.Init(ctx); err != nil {
			logger.Fatalf("init blog repository: %v", err)
		}
		if err := eventRepo.Init(ctx); err != nil {
			logger.Fatalf("init event repository: %v", err)
		}
		if err := contactRepo.Init(ctx); err != nil {
			logger.Fatalf("init contact repository: %v", err)
		}

		if err := seedAdmin(ctx, userRepo, cfg, logger); err != nil {
			logger.Fatalf("seed admin user: %v", err)
		}

		contentSvc = service.NewContentService(blogRepo, eventRepo, contactRepo)
		loginSvc = auth.NewService(userRepo, codec, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
		resolver = auth.NewIdentityResolver(codec, userRepo)
	}

	storageSvc, uploadDir, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(contentSvc, loginSvc, resolver, storageSvc, uploadDir, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

// seedAdmin provisions the admin account from configuration when it does not
// exist yet. This is the only way users enter the system; there is no
// registration endpoint.
func seedAdmin(ctx context.Context, users repository.UserRepository, cfg config.Config, logger *logrus.Logger) error {
	email := strings.TrimSpace(cfg.Admin.Email)
	if email == "" || cfg.Admin.Password == "" {
		logger.Warn("admin credentials not configured, no user will be seeded")
		return nil
	}

	if _, err := users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	if err := users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	}); err != nil {
		return err
	}

	logger.Infof("seeded admin user %s", email)
	return nil
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, string, error) {
	switch cfg.Storage.Backend {
	case "", "local":
		svc, err := storage.NewLocalService(cfg.Upload.Dir)
		if err != nil {
			return nil, "", err
		}
		logger.Infof("storing uploads in %s", cfg.Upload.Dir)
		return svc, cfg.Upload.Dir, nil
	case "s3":
		loadOpts := []func(*awscfg.LoadOptions) error{
			awscfg.WithRegion(cfg.Storage.Region),
		}
		if cfg.AWS.Profile != "" {
			loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
		}

		awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, "", fmt.Errorf("load aws config: %w", err)
		}

		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Storage.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
				o.UsePathStyle = true
			}
		})

		svc, err := storage.NewS3Service(client, storage.S3Options{
			Bucket:    cfg.Storage.Bucket,
			KeyPrefix: cfg.Storage.KeyPrefix,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
		})
		if err != nil {
			return nil, "", err
		}
		logger.Infof("storing uploads in s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
		return svc, "", nil
	default:
		return nil, "", fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
