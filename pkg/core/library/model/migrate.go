package model

import "gorm.io/gorm"

// AutoMigrate creates the four lending tables for development setups.
func AutoMigrate(db *gorm.DB) error {
	return db.Set("gorm:table_options", "COMMENT='library lending'").
		AutoMigrate(&User{}, &Book{}, &Loan{}, &Review{})
}
