package behavior_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duskline/hexsim/internal/application/behavior"
	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/shared"
)

func TestSelectAutoTrade_PicksMaxProfitTriple(t *testing.T) {
	candidates := []behavior.TradeCandidate{
		{Buyer: "b1", Seller: "s1", ItemID: "ore", Amount: 10, BuyPrice: 20, SellPrice: 10}, // profit 100
		{Buyer: "b2", Seller: "s2", ItemID: "ore", Amount: 5, BuyPrice: 50, SellPrice: 10},  // profit 200
		{Buyer: "b3", Seller: "s3", ItemID: "ore", Amount: 10, BuyPrice: 5, SellPrice: 10},  // not profitable (sell >= buy)
	}

	best, ok := behavior.SelectAutoTrade(candidates)
	assert.True(t, ok)
	assert.Equal(t, shared.EntityID("b2"), best.Buyer)
}

func TestSelectAutoTrade_NoneProfitableBacksOff(t *testing.T) {
	candidates := []behavior.TradeCandidate{
		{Buyer: "b1", Seller: "s1", ItemID: "ore", Amount: 10, BuyPrice: 5, SellPrice: 10},
	}
	_, ok := behavior.SelectAutoTrade(candidates)
	assert.False(t, ok)
}

func TestSelectLocalAsteroid_FiltersDriftingAndExhausted(t *testing.T) {
	now := shared.Timestamp(0)
	candidates := []behavior.AsteroidCandidate{
		{ID: "a1", Material: "ore", LocalPos: hexgrid.Vec2{X: 100}, DespawnAt: 1000, RemainingAfterReservations: 10},  // drifts too soon
		{ID: "a2", Material: "ore", LocalPos: hexgrid.Vec2{X: 50}, DespawnAt: 20000, RemainingAfterReservations: 0},   // exhausted
		{ID: "a3", Material: "ore", LocalPos: hexgrid.Vec2{X: 30}, DespawnAt: 20000, RemainingAfterReservations: 10},  // valid, closest
		{ID: "a4", Material: "gas", LocalPos: hexgrid.Vec2{X: 1}, DespawnAt: 20000, RemainingAfterReservations: 10},   // wrong material
	}

	best, ok := behavior.SelectLocalAsteroid(now, hexgrid.Vec2{}, "ore", candidates)
	assert.True(t, ok)
	assert.Equal(t, shared.EntityID("a3"), best.ID)
}

func TestSectorHealth_WeightPrefersHealthySectors(t *testing.T) {
	healthy := behavior.SectorHealth{Distance: 5, Spawned: 8, Respawning: 2}  // health 0.8 > 0.4
	scarce := behavior.SectorHealth{Distance: 5, Spawned: 1, Respawning: 9}   // health 0.1

	assert.Less(t, healthy.Weight(), scarce.Weight())
}

func TestFlipMineState_Transitions(t *testing.T) {
	assert.Equal(t, behavior.MineStateTrading, behavior.FlipMineState(behavior.MineStateMining, 0, false))
	assert.Equal(t, behavior.MineStateMining, behavior.FlipMineState(behavior.MineStateMining, 10, false))
	assert.Equal(t, behavior.MineStateMining, behavior.FlipMineState(behavior.MineStateTrading, 0, true))
	assert.Equal(t, behavior.MineStateTrading, behavior.FlipMineState(behavior.MineStateTrading, 0, false))
}

func TestBackOff_WithinBounds(t *testing.T) {
	now := shared.Timestamp(1000)
	next := behavior.BackOff(now, nil)
	assert.GreaterOrEqual(t, uint64(next), uint64(now)+1000)
}
