package marketdatav1

import (
	"context"

	orderbookv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/orderbook/v1"
)

// DepthCache defines the interface for caching book snapshots for read-side
// consumers. The engine only ever writes to it; a book is never restored from it.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=marketdatav1_mock
type DepthCache interface {
	// StoreSnapshot caches a book snapshot and notifies subscribers.
	StoreSnapshot(ctx context.Context, snapshot *orderbookv1.BookSnapshot) error
}
