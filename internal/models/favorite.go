package models

import "time"

// Favorite records that a user favorited an animal.
// The (UserID, AnimalSlug) pair is unique so favoriting is idempotent.
type Favorite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_user_animal_fav" json:"user_id"`
	AnimalSlug string    `gorm:"not null;index;uniqueIndex:idx_user_animal_fav" json:"animal_slug"`
	CreatedAt  time.Time `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Animal Animal `gorm:"foreignKey:AnimalSlug;constraint:OnDelete:CASCADE" json:"-"`
}
