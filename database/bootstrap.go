// database/bootstrap.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"scls/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	_ = db.Exec(`PRAGMA journal_mode=WAL`)

	// IMPORTANT: run BEFORE AutoMigrate. AutoMigrate would add the column
	// without the DEFAULT, leaving pre-section rows with an empty section
	// instead of 'Ch.3'.
	if err := migrateAddSectionColumns(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := db.AutoMigrate(
		&entities.Student{},
		&entities.Answer{},
		&entities.Chat{},
		&entities.Grade{},
	); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	return db
}

// migrateAddSectionColumns upgrades databases written before assignments were
// split into sections: answers, chats and grades gain a section column with
// existing rows backfilled to 'Ch.3'.
func migrateAddSectionColumns(db *gorm.DB) error {
	for _, table := range []string{"answers", "chats", "grades"} {
		var tbl string
		if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&tbl).Error; err != nil {
			return fmt.Errorf("check table exist: %w", err)
		}
		if tbl == "" {
			// fresh DB, nothing to do
			continue
		}

		type colInfo struct {
			Cid       int
			Name      string
			Type      string
			NotNull   int
			DfltValue sql.NullString
			Pk        int
		}
		var cols []colInfo
		if err := db.Raw(fmt.Sprintf(`PRAGMA table_info(%s)`, table)).Scan(&cols).Error; err != nil {
			return fmt.Errorf("table_info %s: %w", table, err)
		}

		hasSection := false
		for _, c := range cols {
			if strings.ToLower(c.Name) == "section" {
				hasSection = true
				break
			}
		}
		if hasSection {
			continue
		}

		if err := db.Exec(fmt.Sprintf(`ALTER TABLE %s ADD COLUMN section TEXT DEFAULT 'Ch.3'`, table)).Error; err != nil {
			return fmt.Errorf("add section to %s: %w", table, err)
		}
		log.Printf("[db] added section column to %s", table)
	}
	return nil
}
