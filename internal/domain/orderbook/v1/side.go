package orderbookv1

import (
	"fmt"
	"sort"

	orderv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/order/v1"
)

// BookSide holds the price levels of one side of a book, sorted best-first:
// bids descending, asks ascending. Within a level, orders queue FIFO.
//
// BookSide is not safe for concurrent use; the owning book serializes access.
type BookSide struct {
	side    orderv1.Side
	levels  []*Level // sorted best price first
	byPrice map[float64]*Level
}

// NewBookSide creates an empty side.
func NewBookSide(side orderv1.Side) *BookSide {
	return &BookSide{
		side:    side,
		byPrice: make(map[float64]*Level),
	}
}

// Side returns the market side this BookSide represents.
func (s *BookSide) Side() orderv1.Side {
	return s.side
}

// better reports whether price a has priority over price b on this side.
func (s *BookSide) better(a, b float64) bool {
	if s.side == orderv1.SideBuy {
		return a > b
	}
	return a < b
}

// Insert adds a resting order to its price level, creating the level if absent.
func (s *BookSide) Insert(order *orderv1.Order) error {
	if order == nil {
		return ErrNilOrder
	}
	if order.Side != s.side {
		return fmt.Errorf("%w: order side %q does not match book side %q", orderv1.ErrInvalidOrder, order.Side, s.side)
	}

	level, ok := s.byPrice[order.Price]
	if !ok {
		level = NewLevel(order.Price)
		s.byPrice[order.Price] = level

		// keep levels sorted best-first
		i := sort.Search(len(s.levels), func(i int) bool {
			return !s.better(s.levels[i].Price(), order.Price)
		})
		s.levels = append(s.levels, nil)
		copy(s.levels[i+1:], s.levels[i:])
		s.levels[i] = level
	}

	return level.Enqueue(order)
}

// Remove removes a resting order, dropping its price level if it empties.
func (s *BookSide) Remove(order *orderv1.Order) (*orderv1.Order, error) {
	if order == nil {
		return nil, ErrNilOrder
	}

	level, ok := s.byPrice[order.Price]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, order.ID)
	}

	removed, err := level.Remove(order.ID)
	if err != nil {
		return nil, err
	}
	if level.IsEmpty() {
		s.dropLevel(level)
	}
	return removed, nil
}

// Best returns the resting order at the best price with time priority,
// or nil if the side is empty.
func (s *BookSide) Best() *orderv1.Order {
	if len(s.levels) == 0 {
		return nil
	}
	return s.levels[0].Head()
}

// BestPrice returns the best price on this side, or false if the side is empty.
func (s *BookSide) BestPrice() (float64, bool) {
	if len(s.levels) == 0 {
		return 0, false
	}
	return s.levels[0].Price(), true
}

// FillBest applies a fill of qty to the best resting order, removing it and
// its level once consumed. Returns the filled order, or nil if the side is empty.
func (s *BookSide) FillBest(qty float64) *orderv1.Order {
	if len(s.levels) == 0 {
		return nil
	}

	level := s.levels[0]
	filled := level.FillHead(qty)
	if level.IsEmpty() {
		s.dropLevel(level)
	}
	return filled
}

// IsEmpty checks if the side holds no resting orders.
func (s *BookSide) IsEmpty() bool {
	return len(s.levels) == 0
}

// Depth returns the number of populated price levels.
func (s *BookSide) Depth() int {
	return len(s.levels)
}

// TotalVolume returns the total resting quantity across all levels.
func (s *BookSide) TotalVolume() float64 {
	total := 0.0
	for _, level := range s.levels {
		total += level.TotalVolume()
	}
	return total
}

// Levels returns the price levels in best-first order.
// The returned slice is a copy; the levels themselves are shared.
func (s *BookSide) Levels() []*Level {
	levels := make([]*Level, len(s.levels))
	copy(levels, s.levels)
	return levels
}

func (s *BookSide) dropLevel(level *Level) {
	delete(s.byPrice, level.Price())
	for i, l := range s.levels {
		if l == level {
			s.levels = append(s.levels[:i], s.levels[i+1:]...)
			return
		}
	}
}
