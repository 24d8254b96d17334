package store

import (
	"github.com/recipevault/recipevault/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngredientStore holds the database connection for ingredient persistence.
type IngredientStore struct {
	DB *gorm.DB
}

func NewIngredientStore(db *gorm.DB) IngredientStore {
	return IngredientStore{DB: db}
}

func (s IngredientStore) ListByOwner(ownerID uint) ([]Attr, error) {
	var ingredients []models.Ingredient

	if err := s.DB.Where("user_id = ?", ownerID).Order("name DESC").Find(&ingredients).Error; err != nil {
		return nil, err
	}

	attrs := make([]Attr, 0, len(ingredients))

	for _, ingredient := range ingredients {
		attrs = append(attrs, Attr{ID: ingredient.ID, Name: ingredient.Name})
	}

	return attrs, nil
}

func (s IngredientStore) GetOrCreate(ownerID uint, name string) (Attr, error) {
	ingredient, err := getOrCreateIngredient(s.DB, ownerID, name)

	if err != nil {
		return Attr{}, err
	}

	return Attr{ID: ingredient.ID, Name: ingredient.Name}, nil
}

func (s IngredientStore) Rename(ownerID uint, id uint, name string) (Attr, error) {
	var ingredient models.Ingredient

	if err := s.DB.Where("id = ? AND user_id = ?", id, ownerID).First(&ingredient).Error; err != nil {
		return Attr{}, err
	}

	var taken int64

	if err := s.DB.Model(&models.Ingredient{}).Where("user_id = ? AND name = ? AND id <> ?", ownerID, name, id).Count(&taken).Error; err != nil {
		return Attr{}, err
	}

	if taken > 0 {
		return Attr{}, ErrDuplicateName
	}

	if err := s.DB.Model(&ingredient).Update("name", name).Error; err != nil {
		return Attr{}, err
	}

	return Attr{ID: ingredient.ID, Name: ingredient.Name}, nil
}

// Delete removes the row permanently. A soft delete would keep the
// (user_id, name) slot occupied and block re-creating the same name.
func (s IngredientStore) Delete(ownerID uint, id uint) error {
	var ingredient models.Ingredient

	if err := s.DB.Where("id = ? AND user_id = ?", id, ownerID).First(&ingredient).Error; err != nil {
		return err
	}

	return s.DB.Unscoped().Select(clause.Associations).Delete(&ingredient).Error
}

func getOrCreateIngredient(tx *gorm.DB, ownerID uint, name string) (models.Ingredient, error) {
	ingredient := models.Ingredient{UserID: ownerID, Name: name}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(&ingredient).Error

	if err != nil {
		return ingredient, err
	}

	if ingredient.ID == 0 {
		err = tx.Where("user_id = ? AND name = ?", ownerID, name).First(&ingredient).Error
	}

	return ingredient, err
}
