package engine

import (
	"context"
	"sync"
	"time"

	marketdatav1 "github.com/muhammadchandra19/securities-exchange/internal/domain/marketdata/v1"
	orderv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/order/v1"
	orderbookv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/orderbook/v1"
	tradepublisherv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/trade-publisher/v1"
	traderecorderv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/trade-recorder/v1"
	"github.com/muhammadchandra19/securities-exchange/internal/usecase/exchange"
	"github.com/muhammadchandra19/securities-exchange/internal/usecase/orderbook"
	"github.com/muhammadchandra19/securities-exchange/pkg/logger"
	"github.com/muhammadchandra19/securities-exchange/pkg/util"
)

// Engine wires the exchange to its outbound surfaces: the Kafka trade
// publisher, the QuestDB trade recorder and the Redis depth cache. Matching
// stays synchronous; everything outbound runs on the engine's goroutines.
type Engine struct {
	exchange   *exchange.SecuritiesExchange
	publisher  tradepublisherv1.Publisher
	recorder   traderecorderv1.Recorder
	depthCache marketdatav1.DepthCache
	logger     logger.Interface

	trades chan *orderbookv1.Trade

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	options *Options
}

// NewEngine creates an engine around the exchange. publisher, recorder and
// depthCache may be nil; the corresponding surface is then disabled.
func NewEngine(
	ex *exchange.SecuritiesExchange,
	publisher tradepublisherv1.Publisher,
	recorder traderecorderv1.Recorder,
	depthCache marketdatav1.DepthCache,
	log logger.Interface,
	options *Options,
) *Engine {
	if options == nil {
		options = DefaultEngineOptions()
	}

	e := &Engine{
		exchange:   ex,
		publisher:  publisher,
		recorder:   recorder,
		depthCache: depthCache,
		logger:     log,
		trades:     make(chan *orderbookv1.Trade, options.TradeBufferSize),
		options:    options,
	}
	ex.SetTradeSink(e)
	return e
}

// Start launches the trade pipeline and the depth publisher.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	e.wg.Add(2)
	go e.runTradePipeline()
	go e.runDepthPublisher()

	e.logger.Info("engine started", logger.Field{
		Key:   "instruments",
		Value: e.exchange.Instruments(),
	})
	return nil
}

// Stop gracefully shuts down the engine, bounded by ctx.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("engine stop timeout exceeded")
		return ctx.Err()
	}
}

// SubmitOrder submits an order through the exchange.
func (e *Engine) SubmitOrder(ctx context.Context, req exchange.SubmitOrderRequest) (*orderbook.Result, error) {
	return e.exchange.SubmitOrder(util.WithRequestID(ctx, ""), req)
}

// CancelOrder cancels a resting order.
func (e *Engine) CancelOrder(ctx context.Context, instrumentID, orderID string) (*orderv1.Order, error) {
	return e.exchange.CancelOrder(util.WithRequestID(ctx, ""), instrumentID, orderID)
}

// ModifyOrder replaces a resting order's price and/or quantity.
func (e *Engine) ModifyOrder(ctx context.Context, instrumentID, orderID string, newPrice, newQuantity *float64) (*orderbook.Result, error) {
	return e.exchange.ModifyOrder(util.WithRequestID(ctx, ""), instrumentID, orderID, newPrice, newQuantity)
}

// Snapshot returns a point-in-time view of one instrument's book.
func (e *Engine) Snapshot(instrumentID string) (*orderbookv1.BookSnapshot, error) {
	return e.exchange.Snapshot(instrumentID)
}

// OnTrades implements exchange.TradeSink. It hands trades to the pipeline
// without blocking the matching path; if the buffer is full the trade is
// dropped from the outbound surfaces (the book itself stays correct) and a
// warning is logged.
func (e *Engine) OnTrades(instrumentID string, trades []*orderbookv1.Trade) {
	for _, trade := range trades {
		select {
		case e.trades <- trade:
		default:
			e.logger.Warn("trade pipeline full, dropping outbound trade event",
				logger.Field{Key: "instrumentID", Value: instrumentID},
				logger.Field{Key: "tradeID", Value: trade.ID},
			)
		}
	}
}

func (e *Engine) runTradePipeline() {
	defer e.wg.Done()

	for {
		select {
		case <-e.ctx.Done():
			e.drainTrades()
			e.logger.Info("trade pipeline shutting down")
			return
		case trade := <-e.trades:
			e.dispatchTrade(trade)
		}
	}
}

// drainTrades flushes buffered trades on shutdown.
func (e *Engine) drainTrades() {
	for {
		select {
		case trade := <-e.trades:
			e.dispatchTrade(trade)
		default:
			return
		}
	}
}

func (e *Engine) dispatchTrade(trade *orderbookv1.Trade) {
	// Outbound failures are logged by the publisher/recorder themselves and
	// never affect book state.
	ctx := context.Background()
	if e.publisher != nil {
		_ = e.publisher.PublishTrade(ctx, trade)
	}
	if e.recorder != nil {
		_ = e.recorder.Record(ctx, trade)
	}
}

func (e *Engine) runDepthPublisher() {
	defer e.wg.Done()

	if e.depthCache == nil {
		return
	}

	ticker := time.NewTicker(e.options.DepthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("depth publisher shutting down")
			return
		case <-ticker.C:
			e.publishDepth()
		}
	}
}

func (e *Engine) publishDepth() {
	for _, instrumentID := range e.exchange.Instruments() {
		snapshot, err := e.exchange.Snapshot(instrumentID)
		if err != nil {
			e.logger.Error(err, logger.Field{
				Key:   "instrumentID",
				Value: instrumentID,
			})
			continue
		}
		if err := e.depthCache.StoreSnapshot(e.ctx, snapshot); err != nil {
			continue // already logged by the cache
		}
	}
}
