package tradepublisher

import (
	"context"
	"encoding/json"

	orderbookv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/securities-exchange/pkg/config"
	"github.com/muhammadchandra19/securities-exchange/pkg/errors"
	"github.com/muhammadchandra19/securities-exchange/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Publisher publishes trade events to a Kafka topic. Messages are keyed by
// instrument so consumers see per-instrument trades in execution order.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

// NewPublisher creates a Kafka publisher for trade events.
func NewPublisher(cfg config.KafkaConfig, log logger.Interface) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishTrade publishes a single trade event.
func (p *Publisher) PublishTrade(ctx context.Context, trade *orderbookv1.Trade) error {
	value, err := json.Marshal(trade)
	if err != nil {
		return errors.NewTracer(string(errors.TradePublishError)).Wrap(err)
	}

	msg := kafka.Message{
		Key:   []byte(trade.InstrumentID),
		Value: value,
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.Field{Key: "tradeID", Value: trade.ID},
			logger.Field{Key: "instrumentID", Value: trade.InstrumentID},
		)
		return errors.NewTracer(string(errors.TradePublishError)).Wrap(err)
	}
	return nil
}

// Close closes the Kafka writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
