package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/entity"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/styling"
)

type memoryDesigns struct {
	designs map[string]entity.Design
	order   []string
}

func (m *memoryDesigns) Create(_ context.Context, d *entity.Design) (*entity.Design, error) {
	m.designs[d.ID] = *d
	m.order = append(m.order, d.ID)
	return d, nil
}

func (m *memoryDesigns) Get(_ context.Context, id string) (*entity.Design, error) {
	d, ok := m.designs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &d, nil
}

func (m *memoryDesigns) GetByUser(_ context.Context, userID int64) ([]entity.Design, error) {
	var out []entity.Design
	for _, id := range m.order {
		if d, ok := m.designs[id]; ok && d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memoryDesigns) CountByUser(ctx context.Context, userID int64) (int64, error) {
	d, _ := m.GetByUser(ctx, userID)
	return int64(len(d)), nil
}

func (m *memoryDesigns) Delete(_ context.Context, id string) error {
	delete(m.designs, id)
	return nil
}

func TestDesignLifecycle(t *testing.T) {
	s := NewDesignService(&memoryDesigns{designs: map[string]entity.Design{}}, 2)
	ctx := context.Background()
	opts := styling.Default().Apply(styling.SetDotType(styling.DotDots))

	d, err := s.Save(ctx, 1, "  Business card ", opts)
	require.NoError(t, err)
	assert.Equal(t, "Business card", d.Name)
	assert.Len(t, d.ID, 36)

	_, err = s.Save(ctx, 1, "", opts)
	assert.ErrorIs(t, err, ErrInvalidDesignName)

	_, err = s.Save(ctx, 1, "Second", styling.Default())
	require.NoError(t, err)
	_, err = s.Save(ctx, 1, "Third", styling.Default())
	assert.ErrorIs(t, err, ErrDesignLimitReached)

	items, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Business card", items[0].Name)

	loaded, err := s.Load(ctx, 1, d.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Styling.Equal(opts))

	_, err = s.Load(ctx, 2, d.ID)
	assert.ErrorIs(t, err, ErrDesignNotFound, "designs of other users are hidden")
	assert.ErrorIs(t, s.Delete(ctx, 2, d.ID), ErrDesignNotFound)

	require.NoError(t, s.Delete(ctx, 1, d.ID))
	_, err = s.Load(ctx, 1, d.ID)
	assert.ErrorIs(t, err, ErrDesignNotFound)
}
