package store

import (
	"github.com/recipevault/recipevault/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeStore holds the database connection for recipe persistence.
type RecipeStore struct {
	DB *gorm.DB
}

func NewRecipeStore(db *gorm.DB) RecipeStore {
	return RecipeStore{DB: db}
}

func (s RecipeStore) ListByOwner(ownerID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe

	if err := s.DB.Where("user_id = ?", ownerID).Order("id DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}

	return recipes, nil
}

// GetByOwner loads a recipe with its tags and ingredients. Recipes owned by
// other users surface as gorm.ErrRecordNotFound.
func (s RecipeStore) GetByOwner(ownerID uint, id uint) (models.Recipe, error) {
	var recipe models.Recipe

	err := s.DB.Preload("Tags").Preload("Ingredients").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&recipe).Error

	return recipe, err
}

// Create stores a recipe and reconciles its nested tag and ingredient names
// in one transaction. Names are resolved against the owner's existing rows,
// creating only what is missing.
func (s RecipeStore) Create(recipe *models.Recipe, tagNames, ingredientNames []string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}

		tags, err := resolveTags(tx, recipe.UserID, tagNames)

		if err != nil {
			return err
		}

		if len(tags) > 0 {
			if err := tx.Model(recipe).Association("Tags").Append(&tags); err != nil {
				return err
			}
		}

		ingredients, err := resolveIngredients(tx, recipe.UserID, ingredientNames)

		if err != nil {
			return err
		}

		if len(ingredients) > 0 {
			if err := tx.Model(recipe).Association("Ingredients").Append(&ingredients); err != nil {
				return err
			}
		}

		return nil
	})
}

// Update saves the recipe's scalar fields and, when a name list is non-nil,
// replaces the whole associated set. A non-nil empty list clears it, a nil
// list leaves it untouched.
func (s RecipeStore) Update(recipe *models.Recipe, tagNames, ingredientNames *[]string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}

		if tagNames != nil {
			tags, err := resolveTags(tx, recipe.UserID, *tagNames)

			if err != nil {
				return err
			}

			if len(tags) == 0 {
				if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
					return err
				}
			} else if err := tx.Model(recipe).Association("Tags").Replace(&tags); err != nil {
				return err
			}
		}

		if ingredientNames != nil {
			ingredients, err := resolveIngredients(tx, recipe.UserID, *ingredientNames)

			if err != nil {
				return err
			}

			if len(ingredients) == 0 {
				if err := tx.Model(recipe).Association("Ingredients").Clear(); err != nil {
					return err
				}
			} else if err := tx.Model(recipe).Association("Ingredients").Replace(&ingredients); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s RecipeStore) Delete(ownerID uint, id uint) error {
	var recipe models.Recipe

	if err := s.DB.Where("id = ? AND user_id = ?", id, ownerID).First(&recipe).Error; err != nil {
		return err
	}

	return s.DB.Select(clause.Associations).Delete(&recipe).Error
}

func resolveTags(tx *gorm.DB, ownerID uint, names []string) ([]models.Tag, error) {
	var tags []models.Tag

	for _, name := range dedupe(names) {
		tag, err := getOrCreateTag(tx, ownerID, name)

		if err != nil {
			return nil, err
		}

		tags = append(tags, tag)
	}

	return tags, nil
}

func resolveIngredients(tx *gorm.DB, ownerID uint, names []string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient

	for _, name := range dedupe(names) {
		ingredient, err := getOrCreateIngredient(tx, ownerID, name)

		if err != nil {
			return nil, err
		}

		ingredients = append(ingredients, ingredient)
	}

	return ingredients, nil
}

// dedupe drops repeated names so a payload naming the same tag twice maps to
// a single row and a single join entry.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))

	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	return out
}
