package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Run{},
		&CellValue{},
		&Region{},
		&RegionValue{},
		&RegionGeometry{},
		&Hex{},
		&HexValue{},
	}
}

// Generators returns all schema models as DDL generators, in the order
// their tables are created.
func Generators() []DDLGenerator {
	return []DDLGenerator{
		Run{},
		CellValue{},
		Region{},
		RegionValue{},
		RegionGeometry{},
		Hex{},
		HexValue{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
