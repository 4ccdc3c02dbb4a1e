package redis

import (
	"context"
	"time"

	"github.com/muhammadchandra19/securities-exchange/pkg/errors"
	"github.com/muhammadchandra19/securities-exchange/pkg/logger"
	v9 "github.com/redis/go-redis/v9"
)

type client struct {
	logger  *logger.Logger
	config  *Config
	cmdable *v9.Client
}

// NewClient creates a new Redis client with the provided logger and configuration.
func NewClient(logger *logger.Logger, config *Config) Client {
	return &client{
		logger: logger,
		config: config,
	}
}

// Connect validates the configuration, dials Redis and pings it once.
func (c *client) Connect(ctx context.Context) error {
	if c.config == nil {
		return errors.NewErrorDetails("Redis config is nil", string(errors.RedisConfigError), "connect")
	}
	if c.config.Addr == "" {
		return errors.NewErrorDetails("Redis address is empty", string(errors.RedisConfigError), "connect")
	}
	if c.config.ConnectTimeout <= 0 {
		return errors.NewErrorDetails("Invalid Redis connect timeout", string(errors.RedisConfigError), "connect")
	}
	if c.config.PoolSize <= 0 {
		return errors.NewErrorDetails("Invalid Redis pool size", string(errors.RedisConfigError), "connect")
	}

	c.cmdable = v9.NewClient(&v9.Options{
		Addr:            c.config.Addr,
		Username:        c.config.Username,
		Password:        c.config.Password,
		DB:              c.config.DB,
		MaxRetries:      c.config.MaxRetries,
		MinRetryBackoff: c.config.MinRetryBackoff,
		MaxRetryBackoff: c.config.MaxRetryBackoff,
		DialTimeout:     c.config.ConnectTimeout,
		ReadTimeout:     c.config.ConnectTimeout,
		WriteTimeout:    c.config.ConnectTimeout,
		PoolSize:        c.config.PoolSize,
		MinIdleConns:    c.config.MinIdleConns,
	})

	if err := c.Ping(ctx); err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "Connected to Redis", logger.Field{
		Key:   "addr",
		Value: c.config.Addr,
	})
	return nil
}

// Disconnect closes the underlying connection pool.
func (c *client) Disconnect(ctx context.Context) error {
	if c.cmdable == nil {
		return nil
	}
	if err := c.cmdable.Close(); err != nil {
		c.logger.ErrorContext(ctx, err)
		return errors.NewTracer("redis_disconnect_error").Wrap(err)
	}
	return nil
}

// Ping checks the connection to Redis.
func (c *client) Ping(ctx context.Context) error {
	if err := c.cmdable.Ping(ctx).Err(); err != nil {
		return errors.NewErrorDetails(err.Error(), string(errors.RedisConnectionError), "ping")
	}
	return nil
}

// Get retrieves the value stored at key.
func (c *client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.cmdable.Get(ctx, key).Result()
	if err == v9.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.NewErrorDetails(err.Error(), string(errors.RedisGetError), key)
	}
	return val, nil
}

// Set stores value at key with the given expiration.
func (c *client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if err := c.cmdable.Set(ctx, key, value, expiration).Err(); err != nil {
		return errors.NewErrorDetails(err.Error(), string(errors.RedisSetError), key)
	}
	return nil
}

// Publish sends message to the given channel and returns the receiver count.
func (c *client) Publish(ctx context.Context, channel string, message any) (int64, error) {
	n, err := c.cmdable.Publish(ctx, channel, message).Result()
	if err != nil {
		return 0, errors.NewErrorDetails(err.Error(), string(errors.RedisPublishError), channel)
	}
	return n, nil
}
