package engine

import (
	"github.com/duskline/hexsim/internal/application/behavior"
	"github.com/duskline/hexsim/internal/domain/asteroid"
	"github.com/duskline/hexsim/internal/domain/inventory"
	"github.com/duskline/hexsim/internal/domain/pathfinding"
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/ship"
)

// RegisterDefaultBehaviors wires AutoTrade, AutoMine, AutoHarvest, and
// AutoConstruct. The first three only consider stations, asteroids, and
// gas giants in the ship's current sector; AutoConstruct takes any
// registered construction site and routes to its sector. A host
// that wants cross-sector trading or mining can register richer
// BehaviorFns under the same names instead.
func (e *Engine) RegisterDefaultBehaviors() {
	e.RegisterBehavior("AutoTrade", autoTradeBehavior)
	e.RegisterBehavior("AutoMine", autoMineBehavior)
	e.RegisterBehavior("AutoHarvest", autoHarvestBehavior)
	e.RegisterBehavior("AutoConstruct", autoConstructBehavior)
}

func routeBetween(e *Engine, from, to shared.EntityID) ([]behavior.PlanStep, bool) {
	_, fromCoord, ok := e.locate(from)
	if !ok {
		return nil, false
	}
	_, toCoord, ok := e.locate(to)
	if !ok {
		return nil, false
	}
	if fromCoord == toCoord {
		return nil, true
	}
	path, ok := pathfinding.FindRoute(e.Sectors, fromCoord, toCoord)
	if !ok {
		return nil, false
	}
	var steps []behavior.PlanStep
	for range path[1:] {
		steps = append(steps, behavior.PlanStep{Kind: "UseGate", Params: map[string]any{}})
	}
	return steps, true
}

// autoTradeBehavior scans the ship's own sector for a profitable
// buy-low/sell-high pair among registered stations, deriving buy/sell
// orders from each station's current inventory.
func autoTradeBehavior(e *Engine, s *ship.Ship, now shared.Timestamp) (behavior.Plan, bool) {
	stations := e.StationsInSector(s.Sector)
	if len(stations) < 1 || e.Manifest == nil {
		return behavior.Plan{}, false
	}
	var candidates []behavior.TradeCandidate
	for itemID := range e.Manifest.Items {
		for _, sellerID := range stations {
			sellerInv, ok := e.StationInventory(sellerID)
			if !ok {
				continue
			}
			sellOrder := sellerInv.DeriveOrder(e.Manifest, itemID, inventory.Sell, 1)
			if sellOrder.Amount <= 0 {
				continue
			}
			for _, buyerID := range stations {
				if buyerID == sellerID {
					continue
				}
				buyerInv, ok := e.StationInventory(buyerID)
				if !ok {
					continue
				}
				buyOrder := buyerInv.DeriveOrder(e.Manifest, itemID, inventory.Buy, 1)
				if buyOrder.Amount <= 0 {
					continue
				}
				amount := sellOrder.Amount
				if buyOrder.Amount < amount {
					amount = buyOrder.Amount
				}
				if amount <= 0 {
					continue
				}
				candidates = append(candidates, behavior.TradeCandidate{
					Buyer: buyerID, Seller: sellerID, ItemID: itemID,
					Amount: amount, BuyPrice: buyOrder.Price, SellPrice: sellOrder.Price,
				})
			}
		}
	}
	best, ok := behavior.SelectAutoTrade(candidates)
	if !ok {
		return behavior.Plan{}, false
	}
	routeToSeller, ok := routeBetween(e, s.ID, best.Seller)
	if !ok {
		return behavior.Plan{}, false
	}
	routeToBuyer, ok := routeBetween(e, best.Seller, best.Buyer)
	if !ok {
		return behavior.Plan{}, false
	}
	return behavior.PlanAutoTrade(best, routeToSeller, routeToBuyer), true
}

func autoMineBehavior(e *Engine, s *ship.Ship, now shared.Timestamp) (behavior.Plan, bool) {
	e.mu.RLock()
	fields := make(map[fieldKey]*asteroid.Field)
	for key, field := range e.asteroidFields {
		if key.Coord == s.Sector {
			fields[key] = field
		}
	}
	e.mu.RUnlock()

	var candidates []behavior.AsteroidCandidate
	for _, field := range fields {
		for _, a := range field.Live() {
			candidates = append(candidates, behavior.AsteroidCandidate{
				ID: a.ID, LocalPos: a.LocalPos, DespawnAt: a.DespawnAt,
				Material: a.Material, RemainingAfterReservations: a.RemainingAfterReservations(),
			})
		}
	}
	oreItem := "ore"
	if e.Manifest != nil {
		for _, m := range e.Manifest.AsteroidMaterials {
			oreItem = m.ItemID
			break
		}
	}
	best, ok := behavior.SelectLocalAsteroid(now, s.Position, oreItem, candidates)
	if !ok {
		return behavior.Plan{}, false
	}
	return behavior.PlanMineLocal(best.ID, best.RemainingAfterReservations), true
}

// autoHarvestBehavior picks the nearest gas giant in the ship's sector
// and plans a harvest run sized to the ship's remaining cargo space for
// that gas. Gas giants don't deplete, so there is no "remaining ore" to
// rank by the way autoMineBehavior does.
func autoHarvestBehavior(e *Engine, s *ship.Ship, now shared.Timestamp) (behavior.Plan, bool) {
	ids := e.GasGiantsInSector(s.Sector)
	if len(ids) == 0 {
		return behavior.Plan{}, false
	}

	e.mu.RLock()
	var bestID shared.EntityID
	var bestGiant gasGiant
	bestDist := -1.0
	for _, id := range ids {
		g := e.gasGiants[id]
		d := g.LocalPos.Sub(s.Position).Length()
		if bestDist < 0 || d < bestDist {
			bestDist = d
			bestID = id
			bestGiant = g
		}
	}
	e.mu.RUnlock()
	if bestID.IsZero() {
		return behavior.Plan{}, false
	}

	reserved := float64(s.Inventory.FreeSpaceFor(e.Manifest, bestGiant.Gas))
	if reserved <= 0 {
		return behavior.Plan{}, false
	}
	return behavior.PlanHarvestLocal(bestID, bestGiant.Gas, reserved), true
}

func autoConstructBehavior(e *Engine, s *ship.Ship, now shared.Timestamp) (behavior.Plan, bool) {
	e.mu.RLock()
	var siteID shared.EntityID
	found := false
	for id := range e.constructionSites {
		siteID, found = id, true
		break
	}
	e.mu.RUnlock()
	if !found {
		return behavior.Plan{}, false
	}
	route, ok := routeBetween(e, s.ID, siteID)
	if !ok {
		return behavior.Plan{}, false
	}
	return behavior.PlanAutoConstruct(siteID, route), true
}
