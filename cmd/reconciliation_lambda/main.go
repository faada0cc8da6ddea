package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/payout-reconciliation/pkg/config"
	"github.com/chris/payout-reconciliation/pkg/gateway"
	applog "github.com/chris/payout-reconciliation/pkg/log"
	"github.com/chris/payout-reconciliation/pkg/notify"
	"github.com/chris/payout-reconciliation/pkg/queue"
	dydbstore "github.com/chris/payout-reconciliation/pkg/storage/dynamodb"
	"github.com/chris/payout-reconciliation/pkg/worker"
	"github.com/joho/godotenv"
)

var w *worker.Worker

func init() {
	// Load environment variables for local testing.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	applog.Init("payout-reconciliation-lambda", applog.WithConsoleLogger())
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

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to load SDK config")
	}

	queueClient := queue.NewClient(sqs.NewFromConfig(awsCfg), cfg.Queue.URL, cfg.Queue.WaitTime(), cfg.Queue.BatchSize())
	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.Dynamo.TransactionsTable, cfg.Dynamo.WalletsTable, cfg.Dynamo.LedgerTable)

	var notifier notify.Notifier = &notify.NoOpNotifier{}
	if cfg.Notify.SenderEmail != "" {
		notifier = notify.NewSESNotifier(sesv2.NewFromConfig(awsCfg), cfg.Notify.SenderEmail)
	}

	w = worker.New(worker.Config{
		Queue:             queueClient,
		Publisher:         queueClient,
		Gateway:           gateway.NewHTTPChecker(cfg.Gateway.BaseURL, cfg.Gateway.Timeout()),
		Store:             store,
		Notifier:          notifier,
		Classifier:        worker.NewClassifier(cfg.Worker.Acceptable(), cfg.Worker.Unacceptable()),
		MaxRetries:        cfg.Worker.Retries(),
		PendingVisibility: cfg.Queue.PendingVisibility(),
		MissingTxPolicy:   worker.MissingTxPolicy(cfg.Worker.MissingTxPolicy),
		Logger:            logger,
	})
}

// HandleRequest processes a batch of SQS records and reports the messages
// that must be redelivered as partial batch failures.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	messages := make([]queue.Message, 0, len(sqsEvent.Records))
	for _, record := range sqsEvent.Records {
		msg := queue.Message{
			ID:            record.MessageId,
			Body:          record.Body,
			ReceiptHandle: record.ReceiptHandle,
			Attributes:    make(map[string]string, len(record.MessageAttributes)),
		}
		for name, attr := range record.MessageAttributes {
			if attr.StringValue != nil {
				msg.Attributes[name] = *attr.StringValue
			}
		}
		messages = append(messages, msg)
	}

	result := w.ProcessBatch(ctx, messages)

	var response events.SQSEventResponse
	for _, id := range result.Failed {
		response.BatchItemFailures = append(response.BatchItemFailures, events.SQSBatchItemFailure{
			ItemIdentifier: id,
		})
	}

	return response, nil
}

func main() {
	lambda.Start(HandleRequest)
}
