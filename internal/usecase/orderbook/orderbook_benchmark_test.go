package orderbook

import (
	"testing"

	orderv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/order/v1"
	orderbookv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/securities-exchange/pkg/logger"
)

func setupBenchmarkBook(b *testing.B) *Book {
	b.Helper()
	return NewBook("BTC-USD", orderbookv1.NewSequencer(), logger.NewNop())
}

func BenchmarkBook_SubmitLimitOrders(b *testing.B) {
	book := setupBenchmarkBook(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		side := orderv1.SideBuy
		price := 10_000.0 - float64(i%100)
		if i%2 == 0 {
			side = orderv1.SideSell
			price = 10_100.0 + float64(i%100)
		}
		_, err := book.Submit(SubmitRequest{
			Side:     side,
			Type:     orderv1.OrderTypeLimit,
			Price:    price,
			Quantity: 1,
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBook_SubmitMarketOrdersWithLiquidity(b *testing.B) {
	book := setupBenchmarkBook(b)

	for i := 0; i < b.N; i++ {
		_, err := book.Submit(SubmitRequest{
			Side:     orderv1.SideSell,
			Type:     orderv1.OrderTypeLimit,
			Price:    10_000 + float64(i%50),
			Quantity: 1,
		})
		if err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := book.Submit(SubmitRequest{
			Side:     orderv1.SideBuy,
			Type:     orderv1.OrderTypeMarket,
			Quantity: 1,
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBook_Snapshot(b *testing.B) {
	book := setupBenchmarkBook(b)

	for i := 0; i < 1_000; i++ {
		_, err := book.Submit(SubmitRequest{
			Side:     orderv1.SideBuy,
			Type:     orderv1.OrderTypeLimit,
			Price:    10_000 - float64(i%200),
			Quantity: 1,
		})
		if err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = book.Snapshot()
	}
}
