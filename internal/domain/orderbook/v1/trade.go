package orderbookv1

import (
	"time"

	orderv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/order/v1"
	"github.com/muhammadchandra19/securities-exchange/pkg/util"
)

// Trade represents one execution between a buy and a sell order.
// The execution price is always the resting order's price.
type Trade struct {
	ID           string  `json:"id"`
	InstrumentID string  `json:"instrumentID"`
	BuyOrderID   string  `json:"buyOrderID"`
	SellOrderID  string  `json:"sellOrderID"`
	Price        float64 `json:"price"`
	Quantity     float64 `json:"quantity"`
	SequenceNo   int64   `json:"sequenceNo"`
	Timestamp    int64   `json:"timestamp"`
}

// NewTrade builds a trade for a fill between an incoming and a resting order.
func NewTrade(incoming, resting *orderv1.Order, qty float64, sequenceNo int64) *Trade {
	buy, sell := incoming, resting
	if incoming.IsAsk() {
		buy, sell = resting, incoming
	}

	return &Trade{
		ID:           util.NewID(),
		InstrumentID: incoming.InstrumentID,
		BuyOrderID:   buy.ID,
		SellOrderID:  sell.ID,
		Price:        resting.Price,
		Quantity:     qty,
		SequenceNo:   sequenceNo,
		Timestamp:    time.Now().UnixNano(),
	}
}
