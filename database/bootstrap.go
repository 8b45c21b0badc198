// database/bootstrap.go
package database

import (
	"errors"
	"fmt"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/display"
)

// OpenSQLite opens path and exits the process when the schema cannot be prepared.
func OpenSQLite(path string) *gorm.DB {
	db, err := Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("open sqlite")
	}
	return db
}

// Open opens the SQLite database at path, migrates every entity and seeds the
// automatic tag categories. ":memory:" keeps a single connection so every
// query sees the same database.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(
		&entities.Plant{},
		&entities.SeasonalFrequency{},
		&entities.CareEvent{},
		&entities.Category{},
		&entities.Tag{},
		&entities.Photo{},
		&entities.AuditLog{},
		&entities.CareGuide{},
		&entities.GuideChunk{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	if err := seedCategories(db); err != nil {
		return nil, fmt.Errorf("seed categories: %w", err)
	}
	if err := backfillSearchKeys(db); err != nil {
		return nil, fmt.Errorf("backfill search keys: %w", err)
	}
	return db, nil
}

// backfillSearchKeys fills search_key for plants saved before the column existed.
func backfillSearchKeys(db *gorm.DB) error {
	var ps []entities.Plant
	if err := db.Unscoped().Where("search_key IS NULL OR search_key = ''").Find(&ps).Error; err != nil {
		return err
	}
	for i := range ps {
		key := entities.PlantSearchKey(ps[i].Name + "\n" + ps[i].Species)
		if err := db.Unscoped().Model(&ps[i]).UpdateColumn("search_key", key).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedCategories creates the automatic categories when they are missing.
func seedCategories(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range display.AutomaticCategoryNames() {
			var c entities.Category
			err := tx.Where("name = ?", name).First(&c).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := tx.Create(&entities.Category{Name: name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
