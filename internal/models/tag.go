package models

// Tag is a deduplicated tag name. Names are stored verbatim; tags are
// created on first use and never garbage-collected.
type Tag struct {
	Name string `gorm:"primaryKey" json:"name"`
}

// AnimalTag links an animal to a tag. The ID preserves insertion order
// so tag lists render in the order the author supplied them.
type AnimalTag struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	AnimalSlug string `gorm:"not null;index;uniqueIndex:idx_animal_tag" json:"animal_slug"`
	TagName    string `gorm:"not null;uniqueIndex:idx_animal_tag" json:"tag_name"`

	Animal Animal `gorm:"foreignKey:AnimalSlug;constraint:OnDelete:CASCADE" json:"-"`
	Tag    Tag    `gorm:"foreignKey:TagName;constraint:OnDelete:CASCADE" json:"-"`
}
