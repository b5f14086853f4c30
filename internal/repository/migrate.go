package repository

import (
	"tutormatch/internal/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every row model in this
// package. Local development only; production schemas are managed out of band.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&tutorProfileModel{},
		&bookingRequestModel{},
		&bookingMessageModel{},
		&domain.Favorite{},
		&reviewModel{},
		&notificationModel{},
	)
}
