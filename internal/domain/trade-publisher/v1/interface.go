package tradepublisherv1

import (
	"context"

	orderbookv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/orderbook/v1"
)

// Publisher defines the interface for publishing executed trades downstream.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=tradepublisherv1_mock
type Publisher interface {
	// PublishTrade publishes a single trade event.
	PublishTrade(ctx context.Context, trade *orderbookv1.Trade) error
	// Close releases the underlying transport.
	Close() error
}
