package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Item is one cart line: a product id plus an aggregated quantity. Name is
// resolved at add time and never re-resolved on locale change.
type Item struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Image         string  `json:"image,omitempty"`
	Category      string  `json:"category,omitempty"`
	Brand         string  `json:"brand,omitempty"`
	Quantity      int     `json:"quantity"`
}

// State is a consistent snapshot of the cart. Total and ItemCount are derived
// from Items and recomputed after every mutation, never mutated independently.
type State struct {
	Items     []Item  `json:"items"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}

// Store holds a session's cart lines. Lines are ordered by insertion and
// unique by item id; a line with quantity <= 0 never exists, removal is used
// instead. Safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	items     []Item
	total     float64
	itemCount int
}

// NewStore returns an empty cart store.
func NewStore() *Store {
	return &Store{}
}

// Add inserts a line for the item or, when a line with the same id already
// exists, increments its quantity. A quantity below 1 is treated as 1 so bad
// input never surfaces as an error.
func (s *Store) Add(item Item, quantity int) State {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = quantity
		s.items = append(s.items, item)
	}

	s.recompute()
	return s.snapshot()
}

// UpdateQuantity sets the line's quantity to the exact value. A value of zero
// or below removes the line. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(id string, quantity int) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(id)
	} else {
		for i := range s.items {
			if s.items[i].ID == id {
				s.items[i].Quantity = quantity
				break
			}
		}
	}

	s.recompute()
	return s.snapshot()
}

// Remove deletes the line with the given id. Absent ids are a no-op.
func (s *Store) Remove(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(id)
	s.recompute()
	return s.snapshot()
}

// Clear empties the cart and resets the derived totals.
func (s *Store) Clear() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.recompute()
	return s.snapshot()
}

// Snapshot returns the current state without mutating it.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) removeLocked(id string) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// recompute re-derives total and itemCount from the lines. Totals go through
// decimal arithmetic rounded to 2 places so repeated float additions cannot
// drift away from sum(price * quantity).
func (s *Store) recompute() {
	total := decimal.Zero
	count := 0
	for _, item := range s.items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
		count += item.Quantity
	}
	s.total = total.Round(2).InexactFloat64()
	s.itemCount = count
}

func (s *Store) snapshot() State {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return State{
		Items:     items,
		Total:     s.total,
		ItemCount: s.itemCount,
	}
}
