package persistence

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/duskline/hexsim/internal/engine"
	"github.com/duskline/hexsim/internal/infrastructure/config"
)

// Store writes engine.Snapshot values to sqlite between ticks. It never
// reads back into the running engine; restore is the host's job.
type Store struct {
	db *gorm.DB
}

// Open connects to cfg.Path and migrates the snapshot tables. The
// store is sqlite-only; see DESIGN.md for why no other driver is wired.
func Open(cfg config.PersistenceConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshot store: %w", err)
	}
	return &Store{db: db}, nil
}

// AutoMigrate runs migration for every snapshot model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&SnapshotRunModel{},
		&ShipModel{},
		&ShipTaskModel{},
		&InventoryItemModel{},
		&StationModel{},
		&AsteroidModel{},
		&ConstructionSiteModel{},
	)
}

// NewStoreFromDB wraps an already-open, already-migrated *gorm.DB, for
// tests that want to inspect rows directly after a write.
func NewStoreFromDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func writeInventory(tx *gorm.DB, runID uint, ownerKind, ownerID string, items []engine.InventoryItemSnapshot) error {
	for _, it := range items {
		row := InventoryItemModel{
			RunID: runID, OwnerKind: ownerKind, OwnerID: ownerID,
			ItemID: it.ItemID, Current: it.Current,
			PlannedIncoming: it.PlannedIncoming, PlannedOutgoing: it.PlannedOutgoing,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to write inventory item %s for %s %s: %w", it.ItemID, ownerKind, ownerID, err)
		}
	}
	return nil
}

// WriteSnapshot flattens snap into one transaction of rows tagged with
// a fresh run id. Called between ticks, never during one.
func (s *Store) WriteSnapshot(snap engine.Snapshot) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		run := SnapshotRunModel{TakenAt: uint64(snap.TakenAt)}
		if err := tx.Create(&run).Error; err != nil {
			return fmt.Errorf("failed to create snapshot run: %w", err)
		}

		for _, sh := range snap.Ships {
			ship := ShipModel{
				RunID:        run.ID,
				ShipID:       sh.ID.String(),
				ConfigID:     sh.ConfigID,
				SectorQ:      sh.Sector.Q,
				SectorR:      sh.Sector.R,
				PosX:         sh.Position.X,
				PosY:         sh.Position.Y,
				Rotation:     sh.Rotation,
				BehaviorName: sh.BehaviorName,
			}
			if err := tx.Create(&ship).Error; err != nil {
				return fmt.Errorf("failed to write ship snapshot %s: %w", sh.ID, err)
			}
			if err := writeInventory(tx, run.ID, "ship", sh.ID.String(), sh.Inventory); err != nil {
				return err
			}
			if sh.ActiveTask != nil {
				if err := tx.Create(&ShipTaskModel{
					RunID: run.ID, ShipID: sh.ID.String(),
					TaskID: sh.ActiveTask.ID.String(), Kind: sh.ActiveTask.Kind, Status: sh.ActiveTask.Status, Active: true,
				}).Error; err != nil {
					return fmt.Errorf("failed to write active task for ship %s: %w", sh.ID, err)
				}
			}
			for _, t := range sh.PendingTasks {
				if err := tx.Create(&ShipTaskModel{
					RunID: run.ID, ShipID: sh.ID.String(),
					TaskID: t.ID.String(), Kind: t.Kind, Status: t.Status, Active: false,
				}).Error; err != nil {
					return fmt.Errorf("failed to write pending task for ship %s: %w", sh.ID, err)
				}
			}
		}

		for _, st := range snap.Stations {
			station := StationModel{RunID: run.ID, StationID: st.ID.String(), SectorQ: st.Sector.Q, SectorR: st.Sector.R}
			if err := tx.Create(&station).Error; err != nil {
				return fmt.Errorf("failed to write station snapshot %s: %w", st.ID, err)
			}
			if err := writeInventory(tx, run.ID, "station", st.ID.String(), st.Inventory); err != nil {
				return err
			}
		}

		for _, f := range snap.AsteroidFields {
			for _, a := range f.Asteroids {
				row := AsteroidModel{
					RunID: run.ID, AsteroidID: a.ID.String(),
					SectorQ: f.Sector.Q, SectorR: f.Sector.R, Material: f.Material,
					PosX: a.Position.X, PosY: a.Position.Y, Remaining: a.Remaining,
				}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("failed to write asteroid snapshot %s: %w", a.ID, err)
				}
			}
		}

		for _, c := range snap.ConstructionSites {
			ids := make([]string, len(c.Contributors))
			for i, id := range c.Contributors {
				ids[i] = id.String()
			}
			row := ConstructionSiteModel{
				RunID: run.ID, SiteID: c.ID.String(),
				SectorQ: c.Sector.Q, SectorR: c.Sector.R,
				Progress: c.Progress, Contributors: strings.Join(ids, ","),
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to write construction site snapshot %s: %w", c.ID, err)
			}
		}

		return nil
	})
}
