package orderv1

import (
	"errors"
	"fmt"
	"time"

	"github.com/muhammadchandra19/securities-exchange/pkg/util"
)

// ErrInvalidOrder represents a malformed order. It is always rejected before
// any book mutation.
var ErrInvalidOrder = errors.New("invalid order")

// Side represents the market side of an order.
type Side string

const (
	// SideBuy represents a bid order.
	SideBuy Side = "buy"
	// SideSell represents an ask order.
	SideSell Side = "sell"
)

// Opposite returns the opposing market side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// OrderType represents the execution style of an order.
type OrderType string

const (
	// OrderTypeMarket represents a market order. Market orders never rest on the book.
	OrderTypeMarket OrderType = "market"
	// OrderTypeLimit represents a limit order.
	OrderTypeLimit OrderType = "limit"
)

// Status represents the fill state of an order.
type Status string

const (
	// StatusUnfilled means no quantity has been executed yet.
	StatusUnfilled Status = "unfilled"
	// StatusPartiallyFilled means some, but not all, quantity has been executed.
	StatusPartiallyFilled Status = "partially_filled"
	// StatusFilled means the full quantity has been executed.
	StatusFilled Status = "filled"
)

// Order represents a single order in the order book.
//
// Identity fields are set once at submission; RemainingQuantity and Status are
// mutated only by the matching loop via ApplyFill.
type Order struct {
	ID                string    `json:"id"`
	InstrumentID      string    `json:"instrumentID"`
	Side              Side      `json:"side"`
	Type              OrderType `json:"type"`
	Price             float64   `json:"price"` // zero for market orders
	OriginalQuantity  float64   `json:"originalQuantity"`
	RemainingQuantity float64   `json:"remainingQuantity"`
	Status            Status    `json:"status"`
	Sequence          int64     `json:"sequence"` // time-priority token, assigned under the book lock
	Timestamp         int64     `json:"timestamp"`
}

// NewOrder validates the request and creates a new order.
// The price of a market order is ignored; venue rules treat a supplied price
// as advisory, not fatal.
func NewOrder(instrumentID string, side Side, orderType OrderType, price, quantity float64) (*Order, error) {
	if instrumentID == "" {
		return nil, fmt.Errorf("%w: instrument id cannot be empty", ErrInvalidOrder)
	}
	if side != SideBuy && side != SideSell {
		return nil, fmt.Errorf("%w: unknown side %q", ErrInvalidOrder, side)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %f", ErrInvalidOrder, quantity)
	}

	switch orderType {
	case OrderTypeLimit:
		if price <= 0 {
			return nil, fmt.Errorf("%w: limit price must be positive, got %f", ErrInvalidOrder, price)
		}
	case OrderTypeMarket:
		price = 0
	default:
		return nil, fmt.Errorf("%w: unknown order type %q", ErrInvalidOrder, orderType)
	}

	return &Order{
		ID:                util.NewID(),
		InstrumentID:      instrumentID,
		Side:              side,
		Type:              orderType,
		Price:             price,
		OriginalQuantity:  quantity,
		RemainingQuantity: quantity,
		Status:            StatusUnfilled,
		Timestamp:         time.Now().UnixNano(),
	}, nil
}

// ApplyFill decrements the remaining quantity by qty and updates the status.
//
// A qty outside (0, RemainingQuantity] is a bug in the matching loop, not a
// caller error, and panics before any state is touched.
func (o *Order) ApplyFill(qty float64) {
	if qty <= 0 {
		panic(fmt.Sprintf("orderbook: fill quantity %f is not positive for order %s", qty, o.ID))
	}
	if qty > o.RemainingQuantity {
		panic(fmt.Sprintf("orderbook: fill quantity %f exceeds remaining %f for order %s", qty, o.RemainingQuantity, o.ID))
	}

	o.RemainingQuantity -= qty
	if o.RemainingQuantity == 0 {
		o.Status = StatusFilled
	} else {
		o.Status = StatusPartiallyFilled
	}
}

// IsBid checks if the order is a bid (buy) order.
func (o *Order) IsBid() bool {
	return o.Side == SideBuy
}

// IsAsk checks if the order is an ask (sell) order.
func (o *Order) IsAsk() bool {
	return o.Side == SideSell
}

// IsFilled checks if the order is fully executed.
func (o *Order) IsFilled() bool {
	return o.RemainingQuantity == 0
}

// FilledQuantity returns the quantity executed so far.
func (o *Order) FilledQuantity() float64 {
	return o.OriginalQuantity - o.RemainingQuantity
}
