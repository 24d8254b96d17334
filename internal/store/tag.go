package store

import (
	"github.com/recipevault/recipevault/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagStore holds the database connection for tag persistence.
type TagStore struct {
	DB *gorm.DB
}

func NewTagStore(db *gorm.DB) TagStore {
	return TagStore{DB: db}
}

func (s TagStore) ListByOwner(ownerID uint) ([]Attr, error) {
	var tags []models.Tag

	if err := s.DB.Where("user_id = ?", ownerID).Order("name DESC").Find(&tags).Error; err != nil {
		return nil, err
	}

	attrs := make([]Attr, 0, len(tags))

	for _, tag := range tags {
		attrs = append(attrs, Attr{ID: tag.ID, Name: tag.Name})
	}

	return attrs, nil
}

func (s TagStore) GetOrCreate(ownerID uint, name string) (Attr, error) {
	tag, err := getOrCreateTag(s.DB, ownerID, name)

	if err != nil {
		return Attr{}, err
	}

	return Attr{ID: tag.ID, Name: tag.Name}, nil
}

func (s TagStore) Rename(ownerID uint, id uint, name string) (Attr, error) {
	var tag models.Tag

	if err := s.DB.Where("id = ? AND user_id = ?", id, ownerID).First(&tag).Error; err != nil {
		return Attr{}, err
	}

	var taken int64

	if err := s.DB.Model(&models.Tag{}).Where("user_id = ? AND name = ? AND id <> ?", ownerID, name, id).Count(&taken).Error; err != nil {
		return Attr{}, err
	}

	if taken > 0 {
		return Attr{}, ErrDuplicateName
	}

	if err := s.DB.Model(&tag).Update("name", name).Error; err != nil {
		return Attr{}, err
	}

	return Attr{ID: tag.ID, Name: tag.Name}, nil
}

// Delete removes the row permanently. A soft delete would keep the
// (user_id, name) slot occupied and block re-creating the same name.
func (s TagStore) Delete(ownerID uint, id uint) error {
	var tag models.Tag

	if err := s.DB.Where("id = ? AND user_id = ?", id, ownerID).First(&tag).Error; err != nil {
		return err
	}

	return s.DB.Unscoped().Select(clause.Associations).Delete(&tag).Error
}

// getOrCreateTag resolves a (owner, name) pair to a single surviving row.
// The insert is an upsert on the composite unique index, so concurrent
// callers racing on the same name cannot create duplicates.
func getOrCreateTag(tx *gorm.DB, ownerID uint, name string) (models.Tag, error) {
	tag := models.Tag{UserID: ownerID, Name: name}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(&tag).Error

	if err != nil {
		return tag, err
	}

	// Conflict path: the insert was skipped, fetch the existing row.
	if tag.ID == 0 {
		err = tx.Where("user_id = ? AND name = ?", ownerID, name).First(&tag).Error
	}

	return tag, err
}
