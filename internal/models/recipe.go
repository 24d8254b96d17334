package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Recipe struct {
	gorm.Model

	Title       string          `gorm:"not null"`
	Description string
	TimeMinutes int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	Link        string
	UserID      uint            `gorm:"not null;index"`

	// Relationships
	Owner       User         `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
}
