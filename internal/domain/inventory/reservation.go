package inventory

import (
	"github.com/duskline/hexsim/internal/domain/manifest"
	"github.com/duskline/hexsim/internal/domain/shared"
)

// ReserveTransfer reserves n units of itemID as incoming on buyer and
// outgoing on seller in one call. Both inventories' locks are acquired
// in ascending EntityID order regardless of which side is "buyer" in
// this call, so two concurrent transfers naming the same pair in
// opposite roles can never deadlock.
func ReserveTransfer(items *manifest.Manifest, buyerID shared.EntityID, buyer *Inventory, sellerID shared.EntityID, seller *Inventory, itemID string, n int) error {
	first, second := buyer, seller
	if sellerID < buyerID {
		first, second = seller, buyer
	}

	first.mu.Lock()
	defer first.mu.Unlock()
	if first != second {
		second.mu.Lock()
		defer second.mu.Unlock()
	}

	reserve := func(inv *Inventory, asBuyer bool) error {
		if asBuyer {
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
			return nil
		}
		s := inv.stockLocked(itemID)
		if s.Current-s.PlannedOutgoing < n {
			return shared.InsufficientStockError(itemID)
		}
		return nil
	}

	// Validate both sides before mutating either, so a failure on the
	// second check never leaves the first half-reserved.
	if err := reserve(first, first == buyer); err != nil {
		return err
	}
	if err := reserve(second, second == buyer); err != nil {
		return err
	}

	buyer.stockLocked(itemID).PlannedIncoming += n
	seller.stockLocked(itemID).PlannedOutgoing += n
	return nil
}
