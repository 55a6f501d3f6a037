package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sonority/internal/config"
	"sonority/internal/database"
	"sonority/internal/logger"
	"sonority/internal/repositories"
	"sonority/internal/server"
	"sonority/internal/services"
	"sonority/internal/storage"
	"sonority/pkg/rabbitmq"

	"github.com/redis/go-redis/v9"
	"github.com/streadway/amqp"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

// setup loads the configuration and builds the logger shared by every command.
func setup(cmd *cli.Command) (*config.Config, *logger.Logger, error) {
	if err := config.LoadDotEnv(cmd.String("env-file")); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, log, nil
}

func migrate(_ context.Context, cmd *cli.Command) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}
	log.Info("database migrated", "driver", cfg.DatabaseDriver)
	return nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		return err
	}

	blobs, err := openBlobStore(ctx, cfg)
	if err != nil {
		return err
	}

	// A nil *rabbitmq.Client must not end up inside the interface.
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange})
		if err != nil {
			return err
		}
		defer mq.Close()
		events = mq
		log.Info("publishing events", "exchange", cfg.RabbitMQExchange)
	} else {
		log.Warn("RABBITMQ_URL not set, domain events are disabled")
	}

	rdb, err := openRedis(ctx, cfg, log)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	deps := services.Dependencies{
		Store:  repositories.NewStore(db),
		Events: events,
		Blobs:  blobs,
		Log:    log,
	}
	app := server.New(server.Services{
		Auth:     services.NewAuthService(cfg.JWTSecret, cfg.TokenTTL),
		Accounts: services.NewAccountService(deps, services.NewBcryptHasher(cfg.BcryptCost)),
		Artists:  services.NewArtistService(deps),
		Follows:  services.NewFollowService(deps),
		Albums:   services.NewAlbumService(deps),
		Likes:    services.NewLikeService(deps),
	}, server.Options{
		Log:             log,
		Redis:           rdb,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
		RequestLog:      true,
	})

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.AppPort)
	}()
	log.Info("server started", "addr", cfg.AppPort)

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("error during shutdown", "error", err)
	}
	log.Info("server gracefully stopped")
	return nil
}

func openBlobStore(ctx context.Context, cfg *config.Config) (storage.BlobStore, error) {
	if cfg.BlobBackend == "s3" {
		return storage.NewS3Store(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Prefix:          "covers/",
		})
	}
	return storage.NewOSStore(cfg.BlobDir)
}

// openRedis returns nil when REDIS_URL is unset. An unreachable server is only
// reported; the rate limiter lets requests through until it comes back.
func openRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis is unreachable", "error", err)
	}
	return client, nil
}

func tailEvents(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.RabbitMQURL == "" {
		return errors.New("RABBITMQ_URL is required to tail events")
	}
	mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange})
	if err != nil {
		return err
	}
	defer mq.Close()

	handler := func(msg amqp.Delivery) error {
		var evt services.Event
		if err := json.Unmarshal(msg.Body, &evt); err != nil {
			// Acked so it is not redelivered forever.
			log.Warn("dropping malformed event", "routing_key", msg.RoutingKey, "error", err)
			return nil
		}
		log.Info("event", "type", evt.Type, "occurred_at", evt.OccurredAt, "data", evt.Data)
		return nil
	}
	onError := func(msg amqp.Delivery, err error) {
		log.Error("failed to handle event", "routing_key", msg.RoutingKey, "error", err)
	}

	queue := cmd.String("queue")
	if err := mq.ConsumeEvents(queue, cmd.String("binding"), handler, onError); err != nil {
		return err
	}
	log.Info("tailing events", "queue", queue, "binding", cmd.String("binding"))

	<-ctx.Done()
	return nil
}
