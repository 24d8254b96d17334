package models

import "gorm.io/gorm"

// Ingredient names are unique per owner, not globally.
type Ingredient struct {
	gorm.Model

	Name   string `gorm:"not null;uniqueIndex:idx_ingredients_user_name"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_ingredients_user_name"`

	// Relationships
	Owner   User     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Recipes []Recipe `gorm:"many2many:recipe_ingredients"`
}
