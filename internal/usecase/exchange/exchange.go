package exchange

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	orderv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/order/v1"
	orderbookv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/securities-exchange/internal/usecase/orderbook"
	"github.com/muhammadchandra19/securities-exchange/pkg/logger"
)

var (
	// ErrUnknownInstrument is returned when no book is registered for an
	// instrument and auto-creation is disabled.
	ErrUnknownInstrument = errors.New("unknown instrument")
	// ErrDuplicateInstrument is returned when registering an instrument that
	// already has a book.
	ErrDuplicateInstrument = errors.New("instrument already registered")
)

// TradeSink receives the trades produced by a submit or modify, in execution
// order. Implementations must not block: they are called on the matching path.
type TradeSink interface {
	OnTrades(instrumentID string, trades []*orderbookv1.Trade)
}

// Options configures the exchange facade.
type Options struct {
	// AutoCreateInstruments makes SubmitOrder create a book for an unknown
	// instrument instead of rejecting with ErrUnknownInstrument.
	AutoCreateInstruments bool
}

// SubmitOrderRequest describes an order routed to an instrument's book.
type SubmitOrderRequest struct {
	InstrumentID string
	Side         orderv1.Side
	Type         orderv1.OrderType
	Price        float64
	Quantity     float64
}

// SecuritiesExchange routes orders to per-instrument books and aggregates
// their trade output. Books are independent; operations on different
// instruments run concurrently.
type SecuritiesExchange struct {
	mu        sync.RWMutex
	books     map[string]*orderbook.Book
	sequencer *orderbookv1.Sequencer
	logger    logger.Interface
	opts      Options

	sink        TradeSink
	totalTrades atomic.Int64
}

// New creates an exchange with no registered instruments.
func New(log logger.Interface, opts Options) *SecuritiesExchange {
	return &SecuritiesExchange{
		books:     make(map[string]*orderbook.Book),
		sequencer: orderbookv1.NewSequencer(),
		logger:    log,
		opts:      opts,
	}
}

// SetTradeSink attaches a sink that receives all executed trades.
func (e *SecuritiesExchange) SetTradeSink(sink TradeSink) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sink = sink
}

// RegisterInstrument creates an empty book for the instrument.
func (e *SecuritiesExchange) RegisterInstrument(instrumentID string) error {
	if instrumentID == "" {
		return fmt.Errorf("%w: instrument id cannot be empty", orderv1.ErrInvalidOrder)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.books[instrumentID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateInstrument, instrumentID)
	}
	e.books[instrumentID] = orderbook.NewBook(instrumentID, e.sequencer, e.logger)

	e.logger.Info("instrument registered", logger.Field{
		Key:   "instrumentID",
		Value: instrumentID,
	})
	return nil
}

// SubmitOrder routes an order to its instrument's book and forwards resulting
// trades to the sink.
func (e *SecuritiesExchange) SubmitOrder(ctx context.Context, req SubmitOrderRequest) (*orderbook.Result, error) {
	book, err := e.book(req.InstrumentID)
	if err != nil {
		return nil, err
	}

	result, err := book.Submit(orderbook.SubmitRequest{
		Side:     req.Side,
		Type:     req.Type,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		e.logger.WarnContext(ctx, "order rejected",
			logger.Field{Key: "instrumentID", Value: req.InstrumentID},
			logger.Field{Key: "reason", Value: err.Error()},
		)
		return nil, err
	}

	e.emitTrades(req.InstrumentID, result.Trades)
	return result, nil
}

// CancelOrder removes a resting order from its instrument's book.
func (e *SecuritiesExchange) CancelOrder(ctx context.Context, instrumentID, orderID string) (*orderv1.Order, error) {
	book, err := e.book(instrumentID)
	if err != nil {
		return nil, err
	}

	order, err := book.Cancel(orderID)
	if err != nil {
		e.logger.WarnContext(ctx, "cancel rejected",
			logger.Field{Key: "instrumentID", Value: instrumentID},
			logger.Field{Key: "orderID", Value: orderID},
			logger.Field{Key: "reason", Value: err.Error()},
		)
		return nil, err
	}
	return order, nil
}

// ModifyOrder replaces a resting order's price and/or quantity. The
// replacement loses time priority and may trade immediately.
func (e *SecuritiesExchange) ModifyOrder(ctx context.Context, instrumentID, orderID string, newPrice, newQuantity *float64) (*orderbook.Result, error) {
	book, err := e.book(instrumentID)
	if err != nil {
		return nil, err
	}

	result, err := book.Modify(orderID, newPrice, newQuantity)
	if err != nil {
		e.logger.WarnContext(ctx, "modify rejected",
			logger.Field{Key: "instrumentID", Value: instrumentID},
			logger.Field{Key: "orderID", Value: orderID},
			logger.Field{Key: "reason", Value: err.Error()},
		)
		return nil, err
	}

	e.emitTrades(instrumentID, result.Trades)
	return result, nil
}

// Snapshot returns a point-in-time view of one instrument's book.
func (e *SecuritiesExchange) Snapshot(instrumentID string) (*orderbookv1.BookSnapshot, error) {
	book, err := e.book(instrumentID)
	if err != nil {
		return nil, err
	}
	return book.Snapshot(), nil
}

// Instruments returns the registered instrument ids, sorted.
func (e *SecuritiesExchange) Instruments() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := make([]string, 0, len(e.books))
	for id := range e.books {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TotalTrades returns the number of trades executed across all instruments.
func (e *SecuritiesExchange) TotalTrades() int64 {
	return e.totalTrades.Load()
}

func (e *SecuritiesExchange) emitTrades(instrumentID string, trades []*orderbookv1.Trade) {
	if len(trades) == 0 {
		return
	}
	e.totalTrades.Add(int64(len(trades)))

	e.mu.RLock()
	sink := e.sink
	e.mu.RUnlock()

	if sink != nil {
		sink.OnTrades(instrumentID, trades)
	}
}

func (e *SecuritiesExchange) book(instrumentID string) (*orderbook.Book, error) {
	e.mu.RLock()
	book, ok := e.books[instrumentID]
	e.mu.RUnlock()
	if ok {
		return book, nil
	}

	if !e.opts.AutoCreateInstruments {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInstrument, instrumentID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if book, ok := e.books[instrumentID]; ok {
		return book, nil
	}
	book = orderbook.NewBook(instrumentID, e.sequencer, e.logger)
	e.books[instrumentID] = book

	e.logger.Info("instrument auto-created", logger.Field{
		Key:   "instrumentID",
		Value: instrumentID,
	})
	return book, nil
}
