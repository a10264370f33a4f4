package database

import (
	"github.com/bms-digital/user-service/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.UserHistory{},
		&model.SystemParameter{},
	)
}
