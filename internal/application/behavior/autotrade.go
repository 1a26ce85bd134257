package behavior

import (
	"github.com/duskline/hexsim/internal/domain/inventory"
	"github.com/duskline/hexsim/internal/domain/shared"
)

// TraderEntity is any station/ship a trade partner lookup needs:
// its id and inventory.
type TraderEntity struct {
	ID        shared.EntityID
	Inventory *inventory.Inventory
}

// TradeCandidate is one evaluated (buyer, seller, item) triple.
type TradeCandidate struct {
	Buyer, Seller shared.EntityID
	ItemID        string
	Amount        int
	BuyPrice      float64
	SellPrice     float64
}

func (c TradeCandidate) Profit() float64 {
	return (c.BuyPrice - c.SellPrice) * float64(c.Amount)
}

// SelectAutoTrade evaluates every (buyer, seller, item) triple supplied
// via candidates (already carrying buy/sell order prices and the
// capped transferable amount) and returns the one maximizing profit.
// ok=false means no profitable triple exists and the caller should
// back off.
func SelectAutoTrade(candidates []TradeCandidate) (best TradeCandidate, ok bool) {
	bestProfit := -1.0
	for _, c := range candidates {
		if c.Amount <= 0 || c.SellPrice >= c.BuyPrice {
			continue
		}
		profit := c.Profit()
		if profit > bestProfit {
			bestProfit = profit
			best = c
			ok = true
		}
	}
	return best, ok
}

// PlanAutoTrade builds the task sequence for a chosen trade: a route to
// the seller, dock/exchange/undock to buy, then a route to the buyer,
// dock/exchange/undock to sell.
func PlanAutoTrade(c TradeCandidate, routeToSeller, routeToBuyer []PlanStep) Plan {
	var steps []PlanStep
	steps = append(steps, routeToSeller...)
	steps = append(steps,
		moveTo(c.Seller, true, dockDistance),
		requestAccess(c.Seller),
		dock(c.Seller),
		PlanStep{Kind: "ExchangeWares", Params: map[string]any{
			"target": c.Seller, "item_id": c.ItemID, "amount": c.Amount, "direction": "buy",
		}},
		undock(),
	)
	steps = append(steps, routeToBuyer...)
	steps = append(steps,
		moveTo(c.Buyer, true, dockDistance),
		requestAccess(c.Buyer),
		dock(c.Buyer),
		PlanStep{Kind: "ExchangeWares", Params: map[string]any{
			"target": c.Buyer, "item_id": c.ItemID, "amount": c.Amount, "direction": "sell",
		}},
		undock(),
	)
	return Plan{Steps: steps}
}
