package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

var cfg *Config
var once sync.Once

// Config is the configuration for the reconciliation service.
type Config struct {
	Queue
	Dynamo
	Gateway
	Worker
	Notify
	Admin
	Log
}

// Queue is the configuration for the SQS payment-check queue.
type Queue struct {
	URL                  string `env:"SQS_QUEUE_URL" envDefault:""`
	WaitTimeSeconds      string `env:"SQS_WAIT_TIME_SECONDS" envDefault:"10"`
	MaxBatchSize         string `env:"SQS_MAX_BATCH_SIZE" envDefault:"10"`
	PendingVisibilitySec string `env:"SQS_PENDING_VISIBILITY_SECONDS" envDefault:"600"`
}

// Dynamo is the configuration for the DynamoDB tables.
type Dynamo struct {
	TransactionsTable string `env:"DYNAMODB_TRANSACTIONS_TABLE_NAME" envDefault:""`
	WalletsTable      string `env:"DYNAMODB_WALLETS_TABLE_NAME" envDefault:""`
	LedgerTable       string `env:"DYNAMODB_LEDGER_TABLE_NAME" envDefault:""`
}

// Gateway is the configuration for the payment gateway status endpoint.
type Gateway struct {
	BaseURL        string `env:"GATEWAY_BASE_URL" envDefault:""`
	TimeoutSeconds string `env:"GATEWAY_TIMEOUT_SECONDS" envDefault:"10"`
}

// Worker is the configuration for the reconciliation worker itself.
type Worker struct {
	MaxRetries           string `env:"WORKER_MAX_RETRIES" envDefault:"3"`
	AcceptableStatuses   string `env:"WORKER_ACCEPTABLE_STATUSES" envDefault:"settlementcompleted"`
	UnacceptableStatuses string `env:"WORKER_UNACCEPTABLE_STATUSES" envDefault:"failed"`
	// MissingTxPolicy controls what happens when the idempotency guard finds
	// no persisted transaction: "redeliver" leaves the message for the queue
	// to retry, "drop" deletes it.
	MissingTxPolicy string `env:"WORKER_MISSING_TX_POLICY" envDefault:"redeliver"`
}

// Notify is the configuration for outbound user notifications.
type Notify struct {
	SenderEmail string `env:"NOTIFY_SENDER_EMAIL" envDefault:""`
}

// Admin is the configuration for the ops HTTP server.
type Admin struct {
	Port string `env:"ADMIN_PORT" envDefault:"8081"`
}

// Log is the configuration for structured logging.
type Log struct {
	Level string `env:"LOG_LEVEL" envDefault:"1"`
	File  string `env:"LOG_FILE" envDefault:""`
}

// Addr returns the listen address for the ops server.
func (a Admin) Addr() string {
	return fmt.Sprintf("%s:%s", "0.0.0.0", a.Port)
}

// WaitTime returns the SQS long-poll wait duration.
func (q Queue) WaitTime() time.Duration {
	return time.Duration(atoiOr(q.WaitTimeSeconds, 10)) * time.Second
}

// BatchSize returns the maximum number of messages received per poll.
func (q Queue) BatchSize() int {
	return atoiOr(q.MaxBatchSize, 10)
}

// PendingVisibility returns the one-shot visibility extension applied when a
// payment is explicitly marked as pending.
func (q Queue) PendingVisibility() time.Duration {
	return time.Duration(atoiOr(q.PendingVisibilitySec, 600)) * time.Second
}

// Timeout returns the gateway request timeout.
func (g Gateway) Timeout() time.Duration {
	return time.Duration(atoiOr(g.TimeoutSeconds, 10)) * time.Second
}

// Retries returns the configured retry bound for pending classifications.
func (w Worker) Retries() int {
	return atoiOr(w.MaxRetries, 3)
}

// Acceptable returns the set of raw gateway statuses classified as passed.
func (w Worker) Acceptable() []string {
	return splitCSV(w.AcceptableStatuses)
}

// Unacceptable returns the set of raw gateway statuses classified as failed.
func (w Worker) Unacceptable() []string {
	return splitCSV(w.UnacceptableStatuses)
}

// Validate checks invariants that cannot be expressed through defaults.
func (c *Config) Validate() error {
	if c.Worker.Retries() <= 0 {
		return fmt.Errorf("WORKER_MAX_RETRIES must be > 0, got %q", c.Worker.MaxRetries)
	}
	switch c.Worker.MissingTxPolicy {
	case "redeliver", "drop":
	default:
		return fmt.Errorf("WORKER_MISSING_TX_POLICY must be \"redeliver\" or \"drop\", got %q", c.Worker.MissingTxPolicy)
	}
	return nil
}

// Load loads the configuration from environment variables.
func Load() *Config {
	once.Do(func() {
		cfg = &Config{}
		cfgType := reflect.TypeOf(*cfg)
		cfgValue := reflect.ValueOf(cfg).Elem()

		for i := 0; i < cfgType.NumField(); i++ {
			field := cfgType.Field(i)
			fieldValue := cfgValue.Field(i)
			for j := 0; j < field.Type.NumField(); j++ {
				subField := field.Type.Field(j)
				envVar := subField.Tag.Get("env")
				envDefault := subField.Tag.Get("envDefault")
				value := getEnv(envVar, envDefault)

				fieldValue.Field(j).SetString(value)
			}
		}
	})

	return cfg
}

// getEnv retrieves the value of the environment variable named by the key or
// returns the defaultValue if not set.
func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = defaultValue
	}
	return value
}

func atoiOr(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
