package orderbookv1

// LevelSnapshot summarizes one price level: its price, total resting volume
// and the resting order ids in time-priority order.
type LevelSnapshot struct {
	Price    float64  `json:"price"`
	Volume   float64  `json:"volume"`
	OrderIDs []string `json:"orderIDs"`
}

// BookSnapshot is a point-in-time view of one instrument's book.
// Bids are sorted price-descending, asks price-ascending.
type BookSnapshot struct {
	InstrumentID string          `json:"instrumentID"`
	Bids         []LevelSnapshot `json:"bids"`
	Asks         []LevelSnapshot `json:"asks"`
	Timestamp    int64           `json:"timestamp"`
}

// SnapshotSide summarizes a BookSide into level snapshots, best price first.
func SnapshotSide(side *BookSide) []LevelSnapshot {
	levels := side.Levels()
	out := make([]LevelSnapshot, 0, len(levels))
	for _, level := range levels {
		out = append(out, LevelSnapshot{
			Price:    level.Price(),
			Volume:   level.TotalVolume(),
			OrderIDs: level.OrderIDs(),
		})
	}
	return out
}
