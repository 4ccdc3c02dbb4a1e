package orderbook

import (
	"errors"
	"fmt"
	"sync"
	"time"

	orderv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/order/v1"
	orderbookv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/securities-exchange/pkg/logger"
)

var (
	// ErrOrderNotFound is returned when a cancel or modify references an order
	// that is not resting on the book.
	ErrOrderNotFound = errors.New("order not found")
	// ErrNoLiquidity is returned when a market order is submitted against an
	// empty opposite side. The order is rejected outright rather than resting.
	ErrNoLiquidity = errors.New("no liquidity on opposite side")
)

// SubmitRequest describes an order to be matched against the book.
type SubmitRequest struct {
	Side     orderv1.Side
	Type     orderv1.OrderType
	Price    float64 // limit orders only
	Quantity float64
}

// Result is the outcome of a submit or modify: the order in its final state
// for this call and the trades it produced, in execution order.
type Result struct {
	Order  *orderv1.Order
	Trades []*orderbookv1.Trade
}

// Book is the limit order book for a single instrument.
//
// All mutating operations run under one mutex: matching depends on a
// consistent, instantaneous view of both sides. Books for different
// instruments are fully independent.
type Book struct {
	mu           sync.Mutex
	instrumentID string
	bids         *orderbookv1.BookSide
	asks         *orderbookv1.BookSide
	orders       map[string]*orderv1.Order // resting orders only
	sequencer    *orderbookv1.Sequencer
	logger       logger.Interface
}

// NewBook creates an empty book for the given instrument. The sequencer is
// shared across books so trade and order tokens are globally monotonic.
func NewBook(instrumentID string, sequencer *orderbookv1.Sequencer, log logger.Interface) *Book {
	return &Book{
		instrumentID: instrumentID,
		bids:         orderbookv1.NewBookSide(orderv1.SideBuy),
		asks:         orderbookv1.NewBookSide(orderv1.SideSell),
		orders:       make(map[string]*orderv1.Order),
		sequencer:    sequencer,
		logger:       log,
	}
}

// InstrumentID returns the instrument this book trades.
func (b *Book) InstrumentID() string {
	return b.instrumentID
}

// Submit validates an incoming order, matches it against the opposite side in
// price-time priority and rests any limit residual. Validation failures reject
// the order before any book mutation.
func (b *Book) Submit(req SubmitRequest) (*Result, error) {
	order, err := orderv1.NewOrder(b.instrumentID, req.Side, req.Type, req.Price, req.Quantity)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.submitLocked(order)
}

func (b *Book) submitLocked(order *orderv1.Order) (*Result, error) {
	_, opposing := b.sides(order.Side)

	// A market order needs a price to execute against; reject before touching
	// the book so a failed submit leaves no trace.
	if order.Type == orderv1.OrderTypeMarket {
		if _, ok := opposing.BestPrice(); !ok {
			return nil, fmt.Errorf("%w: %s %s for %f", ErrNoLiquidity, order.Side, b.instrumentID, order.OriginalQuantity)
		}
	}

	order.Sequence = b.sequencer.Next()

	trades := b.match(order, opposing)

	if order.Type == orderv1.OrderTypeLimit && order.RemainingQuantity > 0 {
		same, _ := b.sides(order.Side)
		if err := same.Insert(order); err != nil {
			return nil, err
		}
		b.orders[order.ID] = order
	}
	// A market residual is never rested: the remainder is cancelled and the
	// order keeps whatever fill state it reached.

	b.logger.Debug("order processed",
		logger.Field{Key: "instrumentID", Value: b.instrumentID},
		logger.Field{Key: "orderID", Value: order.ID},
		logger.Field{Key: "side", Value: order.Side},
		logger.Field{Key: "type", Value: order.Type},
		logger.Field{Key: "status", Value: order.Status},
		logger.Field{Key: "trades", Value: len(trades)},
	)

	return &Result{Order: order, Trades: trades}, nil
}

// match runs the price-time priority loop for one incoming order. The loop is
// symmetric over sides: only the crossing test knows the direction.
func (b *Book) match(incoming *orderv1.Order, opposing *orderbookv1.BookSide) []*orderbookv1.Trade {
	var trades []*orderbookv1.Trade

	for incoming.RemainingQuantity > 0 {
		resting := opposing.Best()
		if resting == nil {
			break
		}
		if incoming.Type == orderv1.OrderTypeLimit && !crosses(incoming, resting) {
			break
		}

		qty := min(incoming.RemainingQuantity, resting.RemainingQuantity)

		incoming.ApplyFill(qty)
		opposing.FillBest(qty)
		if resting.IsFilled() {
			delete(b.orders, resting.ID)
		}

		trades = append(trades, orderbookv1.NewTrade(incoming, resting, qty, b.sequencer.Next()))
	}

	return trades
}

// crosses reports whether an incoming limit order is willing to trade at the
// resting order's price. Execution always happens at the resting price.
func crosses(incoming, resting *orderv1.Order) bool {
	if incoming.IsBid() {
		return incoming.Price >= resting.Price
	}
	return incoming.Price <= resting.Price
}

// Cancel removes a resting order from whichever side it rests on. Cancelling
// an already filled or unknown order returns ErrOrderNotFound without state change.
func (b *Book) Cancel(orderID string) (*orderv1.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.cancelLocked(orderID)
}

func (b *Book) cancelLocked(orderID string) (*orderv1.Order, error) {
	order, ok := b.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}

	side, _ := b.sides(order.Side)
	if _, err := side.Remove(order); err != nil {
		return nil, err
	}
	delete(b.orders, orderID)

	b.logger.Debug("order cancelled",
		logger.Field{Key: "instrumentID", Value: b.instrumentID},
		logger.Field{Key: "orderID", Value: orderID},
	)

	return order, nil
}

// Modify replaces a resting order with a new price and/or quantity. The
// semantic is cancel plus resubmit: the replacement goes through full matching
// and always receives a fresh sequence, so time priority is never preserved,
// not even for a quantity-only shrink. Omitted fields default to the resting
// order's price and remaining quantity. The replacement keeps the order id.
func (b *Book) Modify(orderID string, newPrice, newQuantity *float64) (*Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing, ok := b.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}

	price := existing.Price
	if newPrice != nil {
		price = *newPrice
	}
	quantity := existing.RemainingQuantity
	if newQuantity != nil {
		quantity = *newQuantity
	}

	// Validate the replacement before touching the book so an invalid modify
	// leaves the resting order untouched.
	replacement, err := orderv1.NewOrder(b.instrumentID, existing.Side, orderv1.OrderTypeLimit, price, quantity)
	if err != nil {
		return nil, err
	}
	replacement.ID = existing.ID

	if _, err := b.cancelLocked(orderID); err != nil {
		return nil, err
	}

	return b.submitLocked(replacement)
}

// Snapshot returns a point-in-time view of both sides.
func (b *Book) Snapshot() *orderbookv1.BookSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return &orderbookv1.BookSnapshot{
		InstrumentID: b.instrumentID,
		Bids:         orderbookv1.SnapshotSide(b.bids),
		Asks:         orderbookv1.SnapshotSide(b.asks),
		Timestamp:    time.Now().UnixNano(),
	}
}

// BestBid returns the best bid price, or false if the bid side is empty.
func (b *Book) BestBid() (float64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bids.BestPrice()
}

// BestAsk returns the best ask price, or false if the ask side is empty.
func (b *Book) BestAsk() (float64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.asks.BestPrice()
}

// BidTotalVolume returns the total resting bid quantity.
func (b *Book) BidTotalVolume() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bids.TotalVolume()
}

// AskTotalVolume returns the total resting ask quantity.
func (b *Book) AskTotalVolume() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.asks.TotalVolume()
}

// OrderCount returns the number of orders resting on the book.
func (b *Book) OrderCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.orders)
}

// RestingOrder returns a resting order by id, or ErrOrderNotFound.
func (b *Book) RestingOrder(orderID string) (*orderv1.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	order, ok := b.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	return order, nil
}

func (b *Book) sides(side orderv1.Side) (same, opposing *orderbookv1.BookSide) {
	if side == orderv1.SideBuy {
		return b.bids, b.asks
	}
	return b.asks, b.bids
}
