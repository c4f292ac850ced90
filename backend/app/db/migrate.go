package db

import (
	"fmt"

	"monitor-hub/backend/app/models"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Device{},
		&models.BlockedSite{},
		&models.AlertLog{},
		&models.AppActivity{},
		&models.WebActivity{},
		&models.FsActivity{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, stmt := range dialectFixups(gdb.Dialector.Name()) {
		if err := gdb.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// dialectFixups returns the statements run after AutoMigrate for a dialect.
// Blocked-site patterns are stored case-sensitively; MySQL's default _ci
// collation would make "Example.com" collide with "example.com".
func dialectFixups(dialect string) []string {
	switch dialect {
	case "mysql":
		return []string{
			"ALTER TABLE blocked_sites MODIFY url varchar(191) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
		}
	}
	return nil
}
