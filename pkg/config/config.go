package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/securities-exchange/pkg/questdb"
	"github.com/muhammadchandra19/securities-exchange/pkg/redis"
)

// MustLoad loads the configuration from environment variables and .env file.
// It panics on malformed environment values.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // .env file is optional

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load()

	return env.Parse(cfg)
}

// Config holds the configuration for the matching engine process.
type Config struct {
	// Instruments pre-registered at startup, e.g. "BTC-USD,ETH-USD".
	Instruments []string `env:"INSTRUMENTS,required"`
	// AutoCreateInstruments makes submit create a book for unknown instruments
	// instead of rejecting.
	AutoCreateInstruments bool `env:"AUTO_CREATE_INSTRUMENTS" envDefault:"false"`

	// DepthInterval controls how often book snapshots are pushed to the depth cache.
	DepthInterval time.Duration `env:"DEPTH_INTERVAL" envDefault:"1s"`
	// TradeBufferSize bounds the in-flight trade pipeline between matching and publishing.
	TradeBufferSize int `env:"TRADE_BUFFER_SIZE" envDefault:"1024"`

	Kafka   KafkaConfig    `envPrefix:"KAFKA_"`
	Redis   redis.Config   `envPrefix:"REDIS_"`
	QuestDB questdb.Config `envPrefix:"QUESTDB_"`
}

// KafkaConfig holds the configuration for the trade event publisher.
type KafkaConfig struct {
	Topic   string   `env:"TOPIC" envDefault:"trades"`
	Brokers []string `env:"BROKER,required"`
}
