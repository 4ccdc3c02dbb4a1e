package orderbookv1

import (
	"errors"
	"fmt"

	orderv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/order/v1"
)

var (
	// ErrNilOrder is returned when a nil order is passed to a level operation.
	ErrNilOrder = errors.New("order cannot be nil")
	// ErrOrderNotFound is returned when an order id does not rest at this level.
	ErrOrderNotFound = errors.New("order not found in level")
)

// Level is a FIFO queue of resting orders at a single price.
// Queue order is insertion order, which equals ascending sequence because
// sequences are assigned under the same lock that inserts.
type Level struct {
	price       float64
	orders      []*orderv1.Order
	totalVolume float64
}

// NewLevel creates an empty price level.
func NewLevel(price float64) *Level {
	return &Level{
		price:  price,
		orders: make([]*orderv1.Order, 0, 4),
	}
}

// Price returns the price of this level.
func (l *Level) Price() float64 {
	return l.price
}

// Enqueue appends an order to the back of the queue.
func (l *Level) Enqueue(order *orderv1.Order) error {
	if order == nil {
		return ErrNilOrder
	}
	if order.RemainingQuantity <= 0 {
		return fmt.Errorf("%w: remaining quantity %f must be positive", orderv1.ErrInvalidOrder, order.RemainingQuantity)
	}

	l.orders = append(l.orders, order)
	l.totalVolume += order.RemainingQuantity
	return nil
}

// Head returns the order with time priority at this level, or nil if empty.
func (l *Level) Head() *orderv1.Order {
	if len(l.orders) == 0 {
		return nil
	}
	return l.orders[0]
}

// FillHead applies a fill of qty to the head order and pops it if fully
// consumed. Returns the filled order, or nil if the level is empty.
func (l *Level) FillHead(qty float64) *orderv1.Order {
	head := l.Head()
	if head == nil {
		return nil
	}

	head.ApplyFill(qty)
	l.totalVolume -= qty

	if head.IsFilled() {
		l.orders = l.orders[1:]
	}
	return head
}

// Remove removes an order from the queue by id.
func (l *Level) Remove(orderID string) (*orderv1.Order, error) {
	for i, o := range l.orders {
		if o.ID == orderID {
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			l.totalVolume -= o.RemainingQuantity
			return o, nil
		}
	}
	return nil, fmt.Errorf("%w: %s at price %f", ErrOrderNotFound, orderID, l.price)
}

// IsEmpty checks if the level has no orders.
func (l *Level) IsEmpty() bool {
	return len(l.orders) == 0
}

// OrderCount returns the number of orders resting at this level.
func (l *Level) OrderCount() int {
	return len(l.orders)
}

// TotalVolume returns the total resting quantity at this level.
func (l *Level) TotalVolume() float64 {
	return l.totalVolume
}

// OrderIDs returns the ids of resting orders in time-priority order.
func (l *Level) OrderIDs() []string {
	ids := make([]string, len(l.orders))
	for i, o := range l.orders {
		ids[i] = o.ID
	}
	return ids
}

// Orders returns a copy of the resting orders in time-priority order.
func (l *Level) Orders() []*orderv1.Order {
	orders := make([]*orderv1.Order, len(l.orders))
	copy(orders, l.orders)
	return orders
}
