package models

import (
	"time"

	"gorm.io/gorm"
)

// Animal is a post. The slug is derived from the title once at creation
// and never changes afterwards, so it can safely serve as the primary key.
type Animal struct {
	Slug      string         `gorm:"primaryKey" json:"slug"`
	Title     string         `gorm:"not null" json:"title"`
	Body      string         `gorm:"not null;type:text" json:"body"`
	Image     string         `json:"image"`
	AuthorID  uint           `gorm:"not null;index" json:"-"`
	Author    User           `gorm:"foreignKey:AuthorID" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Comments []Comment `gorm:"foreignKey:AnimalSlug;constraint:OnDelete:CASCADE" json:"-"`
}
