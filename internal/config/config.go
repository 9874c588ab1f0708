package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig holds the HTTP server settings.
type AppConfig struct {
	Port string
}

// DBConfig holds the Postgres connection settings.
type DBConfig struct {
	URL string
}

// KafkaConfig holds the consumer subscription settings.
type KafkaConfig struct {
	Brokers       []string
	Topic         string
	ConsumerGroup string
}

// ChatConfig holds the downstream chat server settings.
type ChatConfig struct {
	BaseURL string
	Timeout time.Duration
}

// BroadcastConfig controls the async broadcast dispatcher.
type BroadcastConfig struct {
	Workers   int
	QueueSize int
}

type Config struct {
	App       AppConfig
	DB        DBConfig
	Kafka     KafkaConfig
	Chat      ChatConfig
	Broadcast BroadcastConfig
}

// Load reads configuration from environment variables.
// DATABASE_URL, KAFKA_BROKERS and CHAT_SERVER_URL are required.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set in environment")
	}

	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS not set in environment")
	}

	chatURL := os.Getenv("CHAT_SERVER_URL")
	if chatURL == "" {
		return nil, fmt.Errorf("CHAT_SERVER_URL not set in environment")
	}
	chatURL = strings.TrimRight(chatURL, "/")

	return &Config{
		App: AppConfig{
			Port: getEnv("HTTP_PORT", "8080"),
		},
		DB: DBConfig{
			URL: dbURL,
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(brokers, ","),
			Topic:         getEnv("KAFKA_TOPIC", "donation-topic"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "donation-consumer-group"),
		},
		Chat: ChatConfig{
			BaseURL: chatURL,
			Timeout: getEnvDuration("CHAT_TIMEOUT", 5*time.Second),
		},
		Broadcast: BroadcastConfig{
			Workers:   getEnvInt("BROADCAST_WORKERS", 4),
			QueueSize: getEnvInt("BROADCAST_QUEUE_SIZE", 256),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
