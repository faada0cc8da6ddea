package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/payout-reconciliation/pkg/admin"
	"github.com/chris/payout-reconciliation/pkg/config"
	"github.com/chris/payout-reconciliation/pkg/gateway"
	applog "github.com/chris/payout-reconciliation/pkg/log"
	"github.com/chris/payout-reconciliation/pkg/notify"
	"github.com/chris/payout-reconciliation/pkg/queue"
	dydbstore "github.com/chris/payout-reconciliation/pkg/storage/dynamodb"
	"github.com/chris/payout-reconciliation/pkg/worker"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logOpts := []applog.LoggerOption{applog.WithConsoleLogger()}
	if level, err := strconv.Atoi(cfg.Log.Level); err == nil {
		logOpts = append(logOpts, applog.WithLogLevel(level))
	}
	if cfg.Log.File != "" {
		logOpts = append(logOpts, applog.WithFileLogger(cfg.Log.File))
	}
	applog.Init("payout-reconciliation", logOpts...)
	logger := applog.GetLogger()

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.Queue.URL == "" {
		logger.Fatal().Msg("SQS_QUEUE_URL environment variable not set")
	}
	if cfg.Dynamo.TransactionsTable == "" || cfg.Dynamo.WalletsTable == "" || cfg.Dynamo.LedgerTable == "" {
		logger.Fatal().Msg("One or more DynamoDB table name environment variables are not set")
	}
	if cfg.Gateway.BaseURL == "" {
		logger.Fatal().Msg("GATEWAY_BASE_URL environment variable not set")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to load SDK config")
	}

	queueClient := queue.NewClient(sqs.NewFromConfig(awsCfg), cfg.Queue.URL, cfg.Queue.WaitTime(), cfg.Queue.BatchSize())
	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.Dynamo.TransactionsTable, cfg.Dynamo.WalletsTable, cfg.Dynamo.LedgerTable)
	checker := gateway.NewHTTPChecker(cfg.Gateway.BaseURL, cfg.Gateway.Timeout())

	var notifier notify.Notifier = &notify.NoOpNotifier{}
	if cfg.Notify.SenderEmail != "" {
		notifier = notify.NewSESNotifier(sesv2.NewFromConfig(awsCfg), cfg.Notify.SenderEmail)
	} else {
		logger.Warn().Msg("NOTIFY_SENDER_EMAIL not set, user notifications disabled")
	}

	w := worker.New(worker.Config{
		Queue:             queueClient,
		Publisher:         queueClient,
		Gateway:           checker,
		Store:             store,
		Notifier:          notifier,
		Classifier:        worker.NewClassifier(cfg.Worker.Acceptable(), cfg.Worker.Unacceptable()),
		MaxRetries:        cfg.Worker.Retries(),
		PendingVisibility: cfg.Queue.PendingVisibility(),
		MissingTxPolicy:   worker.MissingTxPolicy(cfg.Worker.MissingTxPolicy),
		Logger:            logger,
	})

	adminSrv := &http.Server{
		Addr:    cfg.Admin.Addr(),
		Handler: admin.NewServer(store, logger).Router(),
	}
	go func() {
		logger.Info().Str("addr", adminSrv.Addr).Msg("starting admin server")
		if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("admin server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("queue_url", cfg.Queue.URL).Msg("starting reconciliation worker")

	for {
		if ctx.Err() != nil {
			break
		}

		messages, err := queueClient.ReceiveBatch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			logger.Error().Err(err).Msg("failed to receive messages")
			time.Sleep(time.Second)
			continue
		}
		if len(messages) == 0 {
			continue
		}

		result := w.ProcessBatch(ctx, messages)
		logger.Info().
			Int("processed", result.Processed).
			Int("failed", len(result.Failed)).
			Msg("batch complete")
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := adminSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("admin server shutdown failed")
	}
}
