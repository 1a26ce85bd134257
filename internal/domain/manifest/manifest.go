// Package manifest holds the static, load-once-at-startup world tables:
// items, ship configurations, and asteroid materials. These are named
// world singletons, initialized once and never reinitialized at
// runtime.
package manifest

import "fmt"

// Item describes a tradeable good: its storage footprint and the
// dynamic price range used when recomputing buy/sell order prices.
type Item struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Size     int     `yaml:"size"` // storage units consumed per unit held
	MinPrice float64 `yaml:"min_price"`
	MaxPrice float64 `yaml:"max_price"`
}

// PriceAt evaluates the item's dynamic price range at a given stored
// fraction in [0,1]: low stock trends toward MaxPrice and full stock
// toward MinPrice (for buy orders, buyers pay more when nearly empty).
func (i Item) PriceAt(storedFraction float64) float64 {
	if storedFraction < 0 {
		storedFraction = 0
	}
	if storedFraction > 1 {
		storedFraction = 1
	}
	return i.MaxPrice - storedFraction*(i.MaxPrice-i.MinPrice)
}

// AsteroidMaterial describes one ore type asteroids can be made of.
type AsteroidMaterial struct {
	ID     string  `yaml:"id"`
	ItemID string  `yaml:"item_id"`
	OreMax float64 `yaml:"ore_max"`
}

// ShipConfig captures the per-hull-type stats assigned to a ship:
// engine stats, cargo size, and the rates that gate mining/harvesting/
// construction capability.
type ShipConfig struct {
	ID              string  `yaml:"id"`
	CargoCapacity   int     `yaml:"cargo_capacity"`
	MaxForwardAccel float64 `yaml:"max_forward_accel"`
	MaxForwardSpeed float64 `yaml:"max_forward_speed"`
	MaxAngularAccel float64 `yaml:"max_angular_accel"`
	MaxAngularSpeed float64 `yaml:"max_angular_speed"`
	MaxDeceleration float64 `yaml:"max_deceleration"`
	CanMine         bool    `yaml:"can_mine"`
	MiningRate      float64 `yaml:"mining_rate"`
	CanHarvestGas   bool    `yaml:"can_harvest_gas"`
	HarvestingRate  float64 `yaml:"harvesting_rate"`
	CanConstruct    bool    `yaml:"can_construct"`
	BuildPower      float64 `yaml:"build_power"`
}

// Manifest is the immutable, load-once table of Items, ShipConfigs, and
// AsteroidMaterials, keyed by id.
type Manifest struct {
	Items             map[string]Item
	ShipConfigs       map[string]ShipConfig
	AsteroidMaterials map[string]AsteroidMaterial
}

// New builds an empty manifest ready to be populated by a loader.
func New() *Manifest {
	return &Manifest{
		Items:             make(map[string]Item),
		ShipConfigs:       make(map[string]ShipConfig),
		AsteroidMaterials: make(map[string]AsteroidMaterial),
	}
}

func (m *Manifest) AddItem(item Item) { m.Items[item.ID] = item }

func (m *Manifest) AddShipConfig(cfg ShipConfig) { m.ShipConfigs[cfg.ID] = cfg }

func (m *Manifest) AddAsteroidMaterial(mat AsteroidMaterial) { m.AsteroidMaterials[mat.ID] = mat }

func (m *Manifest) Item(id string) (Item, error) {
	it, ok := m.Items[id]
	if !ok {
		return Item{}, fmt.Errorf("manifest: unknown item %q", id)
	}
	return it, nil
}

func (m *Manifest) ShipConfig(id string) (ShipConfig, error) {
	cfg, ok := m.ShipConfigs[id]
	if !ok {
		return ShipConfig{}, fmt.Errorf("manifest: unknown ship config %q", id)
	}
	return cfg, nil
}

func (m *Manifest) AsteroidMaterial(id string) (AsteroidMaterial, error) {
	mat, ok := m.AsteroidMaterials[id]
	if !ok {
		return AsteroidMaterial{}, fmt.Errorf("manifest: unknown asteroid material %q", id)
	}
	return mat, nil
}
