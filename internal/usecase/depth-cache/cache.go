package depthcache

import (
	"context"
	"encoding/json"
	"fmt"

	orderbookv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/securities-exchange/pkg/errors"
	"github.com/muhammadchandra19/securities-exchange/pkg/logger"
	"github.com/muhammadchandra19/securities-exchange/pkg/redis"
)

const (
	keyPrefix = "depth:"
	channel   = "depth-updates"
)

// Cache stores book snapshots in Redis for read-side consumers and notifies
// subscribers on every update.
type Cache struct {
	redisclient redis.Client
	logger      logger.Interface
}

// NewCache creates a depth cache backed by Redis.
func NewCache(redisclient redis.Client, log logger.Interface) *Cache {
	return &Cache{
		redisclient: redisclient,
		logger:      log,
	}
}

// StoreSnapshot serializes the snapshot, stores it under the instrument's key
// and publishes it to the update channel.
func (c *Cache) StoreSnapshot(ctx context.Context, snapshot *orderbookv1.BookSnapshot) error {
	buf, err := json.Marshal(snapshot)
	if err != nil {
		return errors.NewTracer(string(errors.DepthCacheError)).Wrap(err)
	}

	key := fmt.Sprintf("%s%s", keyPrefix, snapshot.InstrumentID)
	if err := c.redisclient.Set(ctx, key, buf, 0); err != nil {
		c.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "instrumentID",
			Value: snapshot.InstrumentID,
		})
		return errors.NewTracer(string(errors.DepthCacheError)).Wrap(err)
	}

	if _, err := c.redisclient.Publish(ctx, channel, buf); err != nil {
		c.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "instrumentID",
			Value: snapshot.InstrumentID,
		})
		return errors.NewTracer(string(errors.DepthCacheError)).Wrap(err)
	}
	return nil
}
