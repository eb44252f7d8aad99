package entity

import (
	"time"

	"gorm.io/gorm"
)

type Base struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Submission{},
		&Vote{},
		&ContestPeriod{},
		&Comment{},
	)
}
