package postgres

import (
	"context"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/entity"
	"gorm.io/gorm"
)

type DesignStorage struct {
	db *gorm.DB
}

func NewDesignStorage(db *gorm.DB) *DesignStorage {
	return &DesignStorage{
		db: db,
	}
}

func (s *DesignStorage) Create(ctx context.Context, design *entity.Design) (*entity.Design, error) {
	err := s.db.WithContext(ctx).Create(design).Error
	return design, err
}

func (s *DesignStorage) Get(ctx context.Context, id string) (*entity.Design, error) {
	var design entity.Design
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&design).Error
	return &design, err
}

// GetByUser returns the designs of a user, oldest first.
func (s *DesignStorage) GetByUser(ctx context.Context, userID int64) ([]entity.Design, error) {
	var designs []entity.Design
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&designs).Error
	return designs, err
}

func (s *DesignStorage) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Design{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (s *DesignStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Design{}).Error
}
