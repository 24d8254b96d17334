package models

import "gorm.io/gorm"

// Tag names are unique per owner, not globally.
type Tag struct {
	gorm.Model

	Name   string `gorm:"not null;uniqueIndex:idx_tags_user_name"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_tags_user_name"`

	// Relationships
	Owner   User     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Recipes []Recipe `gorm:"many2many:recipe_tags"`
}
