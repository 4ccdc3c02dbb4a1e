package traderecorderv1

import (
	"context"

	orderbookv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/orderbook/v1"
)

// Recorder defines the interface for persisting executed trade ticks.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=traderecorderv1_mock
type Recorder interface {
	// Record stores a single trade tick.
	Record(ctx context.Context, trade *orderbookv1.Trade) error
	// RecordBatch stores a batch of trade ticks.
	RecordBatch(ctx context.Context, trades []*orderbookv1.Trade) error
}
