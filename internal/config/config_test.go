package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/donations")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("CHAT_SERVER_URL", "http://chat:3000")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "donation-topic", cfg.Kafka.Topic)
	assert.Equal(t, "donation-consumer-group", cfg.Kafka.ConsumerGroup)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "http://chat:3000", cfg.Chat.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Chat.Timeout)
	assert.Equal(t, 4, cfg.Broadcast.Workers)
	assert.Equal(t, 256, cfg.Broadcast.QueueSize)
}

func TestLoad_TrimsTrailingSlashFromChatURL(t *testing.T) {
	setRequired(t)
	t.Setenv("CHAT_SERVER_URL", "http://chat:3000/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://chat:3000", cfg.Chat.BaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("KAFKA_TOPIC", "donations-v2")
	t.Setenv("BROADCAST_WORKERS", "8")
	t.Setenv("CHAT_TIMEOUT", "10s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "donations-v2", cfg.Kafka.Topic)
	assert.Equal(t, 8, cfg.Broadcast.Workers)
	assert.Equal(t, 10*time.Second, cfg.Chat.Timeout)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("CHAT_SERVER_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHAT_SERVER_URL")
}
