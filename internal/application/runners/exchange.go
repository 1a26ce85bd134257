package runners

import (
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/ship"
	"github.com/duskline/hexsim/internal/domain/task"
)

// exchangeDuration is the fixed transaction time a buy/sell trade takes.
const exchangeDuration = shared.Duration(2000)

// StartExchangeWares arms finishes_at = now + exchangeDuration.
func StartExchangeWares(t *task.Task, now shared.Timestamp) {
	t.SetState("finishes_at", now.Plus(exchangeDuration))
}

// RunExchangeWares waits out the fixed transaction window, then applies
// the inventory transfer and returns Completed. Not cancelable while
// active.
func RunExchangeWares(w World, s *ship.Ship, t *task.Task, now shared.Timestamp) Result {
	finishesAtVal, _ := t.State("finishes_at")
	finishesAt, _ := finishesAtVal.(shared.Timestamp)
	if now.HasNotPassed(finishesAt) {
		return Ongoing
	}

	counterpartyVal, _ := t.Param("target")
	counterparty, _ := counterpartyVal.(shared.EntityID)
	itemIDVal, _ := t.Param("item_id")
	itemID, _ := itemIDVal.(string)
	amountVal, _ := t.Param("amount")
	amount, _ := amountVal.(int)
	directionVal, _ := t.Param("direction")
	direction, _ := directionVal.(string) // "buy" (ship receives) or "sell" (ship gives)

	counterpartyInv, ok := w.Inventory(counterparty)
	if !ok {
		return Aborted
	}

	switch direction {
	case "sell":
		s.Inventory.CompleteOutgoing(itemID, amount)
		counterpartyInv.CompleteIncoming(itemID, amount)
	default: // buy
		counterpartyInv.CompleteOutgoing(itemID, amount)
		s.Inventory.CompleteIncoming(itemID, amount)
	}
	return Completed
}

// RevertExchangeWares reverses the reservation made at task creation
// with no transfer.
func RevertExchangeWares(w World, s *ship.Ship, t *task.Task) {
	counterpartyVal, _ := t.Param("target")
	counterparty, _ := counterpartyVal.(shared.EntityID)
	itemIDVal, _ := t.Param("item_id")
	itemID, _ := itemIDVal.(string)
	amountVal, _ := t.Param("amount")
	amount, _ := amountVal.(int)
	directionVal, _ := t.Param("direction")
	direction, _ := directionVal.(string)

	counterpartyInv, ok := w.Inventory(counterparty)
	if !ok {
		return
	}

	switch direction {
	case "sell":
		s.Inventory.CancelOutgoing(itemID, amount)
		counterpartyInv.CancelIncoming(itemID, amount)
	default:
		counterpartyInv.CancelOutgoing(itemID, amount)
		s.Inventory.CancelIncoming(itemID, amount)
	}
}
