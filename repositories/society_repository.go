package repositories

import (
	"context"
	"errors"

	"ccaportal/configs"
	"ccaportal/configs/configslog"
	"ccaportal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ISocietyRepository covers society accounts.
type ISocietyRepository interface {
	Create(ctx context.Context, society *models.Society) error
	FindByID(ctx context.Context, id uint) (*models.Society, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Society, error)
}

// SocietyRepository implements ISocietyRepository.
type SocietyRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Society]
}

func NewSocietyRepository() ISocietyRepository {
	return NewSocietyRepositoryTx(configs.GetDB())
}

func NewSocietyRepositoryTx(tx *gorm.DB) ISocietyRepository {
	return &SocietyRepository{db: tx, base: NewBaseRepository[models.Society](tx)}
}

func (r *SocietyRepository) Create(ctx context.Context, society *models.Society) error {
	return r.base.Create(ctx, society)
}

func (r *SocietyRepository) FindByID(ctx context.Context, id uint) (*models.Society, error) {
	society, err := r.base.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			configslog.Log.Error("SocietyRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
			err = ErrNotFound
		}
		return nil, err
	}
	return society, nil
}

// FindByIDs resolves societies in bulk for submission listings.
func (r *SocietyRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Society, error) {
	societies := make(map[uint]models.Society, len(ids))
	if len(ids) == 0 {
		return societies, nil
	}
	var rows []models.Society
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		societies[row.ID] = row
	}
	return societies, nil
}

var _ ISocietyRepository = (*SocietyRepository)(nil)
