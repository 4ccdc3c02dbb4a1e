package traderecorder

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	orderbookv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/securities-exchange/pkg/errors"
	"github.com/muhammadchandra19/securities-exchange/pkg/logger"
	"github.com/muhammadchandra19/securities-exchange/pkg/questdb"
)

const insertTradeSQL = `INSERT INTO trades (id, instrument_id, buy_order_id, sell_order_id, price, quantity, sequence_no, timestamp) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

var tradeColumns = []string{
	"id",
	"instrument_id",
	"buy_order_id",
	"sell_order_id",
	"price",
	"quantity",
	"sequence_no",
	"timestamp",
}

// Recorder persists executed trade ticks to QuestDB. This is trade history
// for the read side; the matching engine never reads it back.
type Recorder struct {
	db     questdb.QuestDBClient
	logger logger.Interface
}

// NewRecorder creates a trade recorder backed by QuestDB.
func NewRecorder(db questdb.QuestDBClient, log logger.Interface) *Recorder {
	return &Recorder{
		db:     db,
		logger: log,
	}
}

// Record stores a single trade tick.
func (r *Recorder) Record(ctx context.Context, trade *orderbookv1.Trade) error {
	err := r.db.Exec(ctx, insertTradeSQL,
		trade.ID,
		trade.InstrumentID,
		trade.BuyOrderID,
		trade.SellOrderID,
		trade.Price,
		trade.Quantity,
		trade.SequenceNo,
		time.Unix(0, trade.Timestamp).UTC(),
	)
	if err != nil {
		r.logger.ErrorContext(ctx, err,
			logger.Field{Key: "tradeID", Value: trade.ID},
			logger.Field{Key: "instrumentID", Value: trade.InstrumentID},
		)
		return errors.NewTracer(string(errors.TradeRecordError)).Wrap(err)
	}
	return nil
}

// RecordBatch stores a batch of trade ticks using the bulk copy protocol.
func (r *Recorder) RecordBatch(ctx context.Context, trades []*orderbookv1.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	copyCount, err := r.db.CopyFrom(ctx, pgx.Identifier{"trades"}, tradeColumns,
		pgx.CopyFromSlice(len(trades), func(i int) ([]any, error) {
			trade := trades[i]
			return []any{
				trade.ID,
				trade.InstrumentID,
				trade.BuyOrderID,
				trade.SellOrderID,
				trade.Price,
				trade.Quantity,
				trade.SequenceNo,
				time.Unix(0, trade.Timestamp).UTC(),
			}, nil
		}))
	if err != nil {
		r.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "trades",
			Value: len(trades),
		})
		return errors.NewTracer(string(errors.TradeRecordError)).Wrap(err)
	}

	r.logger.Debug("recorded trade batch", logger.Field{
		Key:   "copyCount",
		Value: copyCount,
	})
	return nil
}
