// Package inventory implements the two-phase reservation protocol and
// derived buy/sell order books backing every station and ship's stock.
package inventory

import (
	"sync"

	"github.com/duskline/hexsim/internal/domain/manifest"
	"github.com/duskline/hexsim/internal/domain/shared"
)

// Stock tracks one item's current, planned, and total accounting.
type Stock struct {
	Current         int
	PlannedIncoming int
	PlannedOutgoing int
}

func (s Stock) Total() int { return s.Current + s.PlannedIncoming }

// Inventory is the per-entity item ledger. It is mutated exclusively
// through ReserveIncoming/ReserveOutgoing, CompleteIncoming/
// CompleteOutgoing, and CancelIncoming/CancelOutgoing so the invariants current >= planned_outgoing and
// current+planned_incoming <= capacity always hold between calls.
type Inventory struct {
	mu       sync.Mutex
	items    map[string]*Stock
	capacity int // total storage units (item size * count)
}

func New(capacity int) *Inventory {
	return &Inventory{items: make(map[string]*Stock), capacity: capacity}
}

func (inv *Inventory) stockLocked(itemID string) *Stock {
	s, ok := inv.items[itemID]
	if !ok {
		s = &Stock{}
		inv.items[itemID] = s
	}
	return s
}

func (inv *Inventory) Stock(itemID string) Stock {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if s, ok := inv.items[itemID]; ok {
		return *s
	}
	return Stock{}
}

// usedCapacity sums size*total across all held/incoming items.
func (inv *Inventory) usedCapacityLocked(items *manifest.Manifest) int {
	used := 0
	for id, s := range inv.items {
		size := 1
		if items != nil {
			if it, err := items.Item(id); err == nil {
				size = it.Size
			}
		}
		used += size * s.Total()
	}
	return used
}

// ReserveIncoming records n units of itemID about to arrive (the
// buyer's side of a pending transfer). Fails with CapacityExceeded if
// the reservation would push used capacity past inv.capacity.
func (inv *Inventory) ReserveIncoming(items *manifest.Manifest, itemID string, n int) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	size := 1
	if items != nil {
		if it, err := items.Item(itemID); err == nil {
			size = it.Size
		}
	}
	projected := inv.usedCapacityLocked(items) + size*n
	if projected > inv.capacity {
		return shared.CapacityExceededError(itemID)
	}
	inv.stockLocked(itemID).PlannedIncoming += n
	return nil
}

// ReserveOutgoing records n units of itemID about to leave (the
// seller's side of a pending transfer). Fails with InsufficientStock
// if fewer than n units are available once existing outgoing
// reservations are honored.
func (inv *Inventory) ReserveOutgoing(itemID string, n int) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	s := inv.stockLocked(itemID)
	if s.Current-s.PlannedOutgoing < n {
		return shared.InsufficientStockError(itemID)
	}
	s.PlannedOutgoing += n
	return nil
}

// CompleteIncoming applies an arrived transfer: current += n,
// planned_incoming -= n, floored at zero so an arrival that was never
// reserved (mined ore, seeded stock) simply adds to current.
func (inv *Inventory) CompleteIncoming(itemID string, n int) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	s := inv.stockLocked(itemID)
	s.Current += n
	s.PlannedIncoming -= n
	if s.PlannedIncoming < 0 {
		s.PlannedIncoming = 0
	}
}

// CompleteOutgoing applies a departed transfer: current -= n,
// planned_outgoing -= n.
func (inv *Inventory) CompleteOutgoing(itemID string, n int) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	s := inv.stockLocked(itemID)
	s.Current -= n
	s.PlannedOutgoing -= n
}

// CancelIncoming reverses an unfulfilled incoming reservation with no
// transfer.
func (inv *Inventory) CancelIncoming(itemID string, n int) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.stockLocked(itemID).PlannedIncoming -= n
}

// CancelOutgoing reverses an unfulfilled outgoing reservation with no
// transfer.
func (inv *Inventory) CancelOutgoing(itemID string, n int) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.stockLocked(itemID).PlannedOutgoing -= n
}

// FreeSpaceFor returns how many more units of itemID could still be
// reserved as incoming before hitting capacity.
func (inv *Inventory) FreeSpaceFor(items *manifest.Manifest, itemID string) int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	size := 1
	if items != nil {
		if it, err := items.Item(itemID); err == nil {
			size = it.Size
		}
	}
	if size <= 0 {
		return 0
	}
	free := inv.capacity - inv.usedCapacityLocked(items)
	if free < 0 {
		free = 0
	}
	return free / size
}

// Snapshot returns a copy of every item's current stock, keyed by item
// ID, for a serializer to persist between ticks.
func (inv *Inventory) Snapshot() map[string]Stock {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	out := make(map[string]Stock, len(inv.items))
	for id, s := range inv.items {
		out[id] = *s
	}
	return out
}

// IsEmpty reports whether the inventory currently holds nothing of any
// item (used by AutoMine's Trading->Mining flip).
func (inv *Inventory) IsEmpty() bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	for _, s := range inv.items {
		if s.Current > 0 {
			return false
		}
	}
	return true
}

// Order is a derived buy or sell order for one item, recomputed on any
// inventory-changing event.
type Order struct {
	ItemID    string
	Amount    int
	Price     float64
	Threshold int
}

// Kind distinguishes a buy order (threshold = buy up to) from a sell
// order (threshold = keep at least).
type Kind int

const (
	Buy Kind = iota
	Sell
)

// DeriveOrder recomputes the order for itemID given its threshold and
// kind, using the item's dynamic price range.
func (inv *Inventory) DeriveOrder(items *manifest.Manifest, itemID string, kind Kind, threshold int) Order {
	inv.mu.Lock()
	s := inv.stockLocked(itemID)
	current, incoming, outgoing := s.Current, s.PlannedIncoming, s.PlannedOutgoing
	capacity := inv.capacity
	inv.mu.Unlock()

	item, _ := items.Item(itemID)

	switch kind {
	case Buy:
		amount := threshold - (current + incoming)
		if amount < 0 {
			amount = 0
		}
		storedFraction := 0.0
		if threshold > 0 {
			storedFraction = float64(current+incoming) / float64(threshold)
		}
		return Order{ItemID: itemID, Amount: amount, Price: item.PriceAt(storedFraction), Threshold: threshold}
	default: // Sell
		amount := (current - outgoing) - threshold
		if amount < 0 {
			amount = 0
		}
		storedFraction := 0.0
		if capacity > 0 {
			storedFraction = float64(current-outgoing) / float64(capacity)
		}
		return Order{ItemID: itemID, Amount: amount, Price: item.PriceAt(storedFraction), Threshold: threshold}
	}
}
