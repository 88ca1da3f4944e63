package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment belongs to exactly one animal and one author. Deleting either
// cascades to the comment.
type Comment struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Body       string         `gorm:"not null;type:text" json:"body"`
	AnimalSlug string         `gorm:"not null;index" json:"-"`
	AuthorID   uint           `gorm:"not null;index" json:"-"`
	Author     User           `gorm:"foreignKey:AuthorID" json:"-"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
