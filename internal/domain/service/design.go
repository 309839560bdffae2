package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/dto"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/entity"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/styling"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/utils/validator"
)

var (
	ErrDesignNotFound     = errors.New("design not found")
	ErrDesignLimitReached = errors.New("saved designs limit reached")
	ErrInvalidDesignName  = errors.New("invalid design name")
)

type DesignStorage interface {
	Create(ctx context.Context, design *entity.Design) (*entity.Design, error)
	Get(ctx context.Context, id string) (*entity.Design, error)
	GetByUser(ctx context.Context, userID int64) ([]entity.Design, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, id string) error
}

type DesignService struct {
	storage DesignStorage
	limit   int
}

// NewDesignService creates a design service. A non-positive limit disables the per-user cap.
func NewDesignService(storage DesignStorage, limit int) *DesignService {
	return &DesignService{
		storage: storage,
		limit:   limit,
	}
}

func (s *DesignService) Save(ctx context.Context, userID int64, name string, opts styling.Options) (*entity.Design, error) {
	if !validator.DesignName(name, nil) {
		return nil, ErrInvalidDesignName
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if s.limit > 0 {
		count, err := s.storage.CountByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if count >= int64(s.limit) {
			return nil, ErrDesignLimitReached
		}
	}

	return s.storage.Create(ctx, &entity.Design{
		ID:      uuid.New().String(),
		UserID:  userID,
		Name:    strings.TrimSpace(name),
		Styling: opts,
	})
}

func (s *DesignService) List(ctx context.Context, userID int64) ([]dto.DesignListItem, error) {
	designs, err := s.storage.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.DesignListItem, 0, len(designs))
	for _, d := range designs {
		items = append(items, dto.DesignListItem{
			ID:        d.ID,
			Name:      d.Name,
			CreatedAt: d.CreatedAt,
		})
	}
	return items, nil
}

// Load returns a design owned by userID. Designs of other users look missing.
func (s *DesignService) Load(ctx context.Context, userID int64, id string) (*entity.Design, error) {
	design, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDesignNotFound
		}
		return nil, err
	}
	if design.UserID != userID {
		return nil, ErrDesignNotFound
	}
	return design, nil
}

func (s *DesignService) Delete(ctx context.Context, userID int64, id string) error {
	if _, err := s.Load(ctx, userID, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete design %s: %w", id, err)
	}
	return nil
}
