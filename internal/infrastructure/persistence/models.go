// Package persistence is the snapshot store: GORM models and a writer
// that flattens an engine.Snapshot into sqlite rows between ticks.
// Nothing here is read by the simulation itself; restoring a world
// from these rows is a host-side concern.
package persistence

import "time"

// SnapshotRunModel is one taken-at row; every other snapshot table
// foreign-keys to it.
type SnapshotRunModel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	TakenAt   uint64    `gorm:"column:taken_at;not null"` // shared.Timestamp, simulated millis
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (SnapshotRunModel) TableName() string { return "snapshot_runs" }

// ShipModel is one ship's physical/behavior state at a snapshot.
type ShipModel struct {
	ID           uint   `gorm:"column:id;primaryKey;autoIncrement"`
	RunID        uint   `gorm:"column:run_id;not null;index"`
	ShipID       string `gorm:"column:ship_id;not null;index"`
	ConfigID     string `gorm:"column:config_id"`
	SectorQ      int    `gorm:"column:sector_q;not null"`
	SectorR      int    `gorm:"column:sector_r;not null"`
	PosX         float64 `gorm:"column:pos_x"`
	PosY         float64 `gorm:"column:pos_y"`
	Rotation     float64 `gorm:"column:rotation"`
	BehaviorName string  `gorm:"column:behavior_name"`
}

func (ShipModel) TableName() string { return "ship_snapshots" }

// ShipTaskModel is one task (active or pending) on a ship at a snapshot.
type ShipTaskModel struct {
	ID     uint   `gorm:"column:id;primaryKey;autoIncrement"`
	RunID  uint   `gorm:"column:run_id;not null;index"`
	ShipID string `gorm:"column:ship_id;not null;index"`
	TaskID string `gorm:"column:task_id;not null"`
	Kind   string `gorm:"column:kind;not null"`
	Status string `gorm:"column:status;not null"`
	Active bool   `gorm:"column:active;not null"`
}

func (ShipTaskModel) TableName() string { return "ship_task_snapshots" }

// InventoryItemModel is one item's stock for either a ship or a
// station at a snapshot, distinguished by OwnerKind.
type InventoryItemModel struct {
	ID              uint   `gorm:"column:id;primaryKey;autoIncrement"`
	RunID           uint   `gorm:"column:run_id;not null;index"`
	OwnerKind       string `gorm:"column:owner_kind;not null"` // "ship" or "station"
	OwnerID         string `gorm:"column:owner_id;not null;index"`
	ItemID          string `gorm:"column:item_id;not null"`
	Current         int    `gorm:"column:current;not null"`
	PlannedIncoming int    `gorm:"column:planned_incoming;not null"`
	PlannedOutgoing int    `gorm:"column:planned_outgoing;not null"`
}

func (InventoryItemModel) TableName() string { return "inventory_item_snapshots" }

// StationModel is one station's location at a snapshot.
type StationModel struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement"`
	RunID     uint   `gorm:"column:run_id;not null;index"`
	StationID string `gorm:"column:station_id;not null;index"`
	SectorQ   int    `gorm:"column:sector_q;not null"`
	SectorR   int    `gorm:"column:sector_r;not null"`
}

func (StationModel) TableName() string { return "station_snapshots" }

// AsteroidModel is one live asteroid at a snapshot.
type AsteroidModel struct {
	ID          uint    `gorm:"column:id;primaryKey;autoIncrement"`
	RunID       uint    `gorm:"column:run_id;not null;index"`
	AsteroidID  string  `gorm:"column:asteroid_id;not null;index"`
	SectorQ     int     `gorm:"column:sector_q;not null"`
	SectorR     int     `gorm:"column:sector_r;not null"`
	Material    string  `gorm:"column:material;not null"`
	PosX        float64 `gorm:"column:pos_x"`
	PosY        float64 `gorm:"column:pos_y"`
	Remaining   float64 `gorm:"column:remaining"`
}

func (AsteroidModel) TableName() string { return "asteroid_snapshots" }

// ConstructionSiteModel is one construction site's progress at a
// snapshot. Contributors are stored as a comma-joined list of entity
// ids rather than a join table, since the set is small and unordered
// queries over it aren't needed.
type ConstructionSiteModel struct {
	ID           uint    `gorm:"column:id;primaryKey;autoIncrement"`
	RunID        uint    `gorm:"column:run_id;not null;index"`
	SiteID       string  `gorm:"column:site_id;not null;index"`
	SectorQ      int     `gorm:"column:sector_q;not null"`
	SectorR      int     `gorm:"column:sector_r;not null"`
	Progress     float64 `gorm:"column:progress;not null"`
	Contributors string  `gorm:"column:contributors;type:text"`
}

func (ConstructionSiteModel) TableName() string { return "construction_site_snapshots" }
