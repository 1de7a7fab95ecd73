package database

import (
	"github.com/realboxofme/sintas/domain"

	"gorm.io/gorm"
)

// MigrateDB creates or updates the tables. Order matters: referenced tables first.
func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Role{},
		&domain.User{},
		&domain.SuratMasuk{},
		&domain.SuratKeluar{},
		&domain.Disposisi{},
		&domain.Arsip{},
	)
}
