package store

import (
	"strings"

	"creava/models"

	"github.com/jinzhu/gorm"
)

// GormStore implements CreationStore on top of the shared gorm connection.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Insert(creation *models.Creation) error {
	if creation.LikesRaw == "" {
		creation.SetLikes(nil)
	}
	return s.db.Create(creation).Error
}

// ToggleLike runs the whole read-modify-write inside one transaction. On
// postgres the row is locked with FOR UPDATE; sqlite serializes writers on
// its own, and its dialect rejects the FOR UPDATE syntax.
func (s *GormStore) ToggleLike(creationID, userID string) (bool, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return false, tx.Error
	}

	q := tx
	if strings.Contains(strings.ToLower(s.db.Dialect().GetName()), "postgres") {
		q = tx.Set("gorm:query_option", "FOR UPDATE")
	}

	var creation models.Creation
	if err := q.Where("id = ?", creationID).First(&creation).Error; err != nil {
		tx.Rollback()
		if gorm.IsRecordNotFoundError(err) {
			return false, ErrNotFound
		}
		return false, err
	}
	creation.HydrateLikes()

	liked := false
	if creation.HasLike(userID) {
		likes := make([]string, 0, len(creation.Likes))
		for _, id := range creation.Likes {
			if id != userID {
				likes = append(likes, id)
			}
		}
		creation.SetLikes(likes)
	} else {
		creation.SetLikes(append(creation.Likes, userID))
		liked = true
	}

	if err := tx.Model(&models.Creation{}).
		Where("id = ?", creationID).
		Update("likes", creation.LikesRaw).Error; err != nil {
		tx.Rollback()
		return false, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return false, err
	}
	return liked, nil
}

func (s *GormStore) ListPublished() ([]models.Creation, error) {
	creations := []models.Creation{}
	err := s.db.
		Where("publish = ?", true).
		Order("created_at desc").
		Find(&creations).Error
	if err != nil {
		return nil, err
	}
	hydrateAll(creations)
	return creations, nil
}

func (s *GormStore) ListOwn(userID string) ([]models.Creation, error) {
	creations := []models.Creation{}
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&creations).Error
	if err != nil {
		return nil, err
	}
	hydrateAll(creations)
	return creations, nil
}

func hydrateAll(creations []models.Creation) {
	for i := range creations {
		creations[i].HydrateLikes()
	}
}
