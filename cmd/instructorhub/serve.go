package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"instructorhub/internal/db"
	"instructorhub/internal/notify"
	"instructorhub/internal/onboarding"
	"instructorhub/internal/server"
	"instructorhub/internal/storage"
	"instructorhub/internal/store"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return err
	}

	s3Client := s3.NewFromConfig(awsConfig)

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	onboardingRepo := store.NewOnboardingRepository(pool)
	documentRepo := store.NewDocumentRepository(pool)
	userRepo := store.NewUserRepository(pool)
	runner := store.NewRunner(pool)

	objectStorage := storage.NewS3Storage(s3Client, config.StorageBucket, config.PresignedURLExpiration())

	var notifier onboarding.Notifier = notify.Nop{}
	if config.SMTPHost != "" {
		notifier = notify.NewMailer(
			logger,
			config.SMTPHost,
			config.SMTPPort,
			config.SMTPUsername,
			config.SMTPPassword,
			config.SMTPFrom,
			userRepo,
		)
	}

	onboardingService := onboarding.NewService(
		logger,
		onboarding.Config{
			StorageBucket:    config.StorageBucket,
			RetryCooldown:    config.RetryCooldown(),
			MaxFileSizeBytes: config.MaxFileSizeMB * 1024 * 1024,
			RequiredPurposes: onboarding.DefaultRequiredPurposes(),
		},
		runner,
		onboardingRepo,
		documentRepo,
		userRepo,
		objectStorage,
		notifier,
	)

	srv, err := server.New(config, logger, onboardingService)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
