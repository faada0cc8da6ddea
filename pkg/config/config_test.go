package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.Queue.WaitTime())
	assert.Equal(t, 10, cfg.Queue.BatchSize())
	assert.Equal(t, 600*time.Second, cfg.Queue.PendingVisibility())
	assert.Equal(t, 10*time.Second, cfg.Gateway.Timeout())
	assert.Equal(t, 3, cfg.Worker.Retries())
	assert.Equal(t, []string{"settlementcompleted"}, cfg.Worker.Acceptable())
	assert.Equal(t, []string{"failed"}, cfg.Worker.Unacceptable())
	assert.Equal(t, "redeliver", cfg.Worker.MissingTxPolicy)
	assert.Equal(t, "0.0.0.0:8081", cfg.Admin.Addr())
}

func TestWorkerStatusSets(t *testing.T) {
	w := Worker{
		AcceptableStatuses:   "settlementcompleted, paid",
		UnacceptableStatuses: "failed,rejected, ",
	}

	assert.Equal(t, []string{"settlementcompleted", "paid"}, w.Acceptable())
	assert.Equal(t, []string{"failed", "rejected"}, w.Unacceptable())
}

func TestValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		cfg := &Config{
			Worker: Worker{MaxRetries: "3", MissingTxPolicy: "redeliver"},
		}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Drop Policy Is Valid", func(t *testing.T) {
		cfg := &Config{
			Worker: Worker{MaxRetries: "1", MissingTxPolicy: "drop"},
		}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Zero Retries", func(t *testing.T) {
		cfg := &Config{
			Worker: Worker{MaxRetries: "0", MissingTxPolicy: "redeliver"},
		}
		assert.Error(t, cfg.Validate())
	})

	t.Run("Unknown Missing Transaction Policy", func(t *testing.T) {
		cfg := &Config{
			Worker: Worker{MaxRetries: "3", MissingTxPolicy: "explode"},
		}
		assert.Error(t, cfg.Validate())
	})
}
