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

// ICCARepository covers CCA staff accounts.
type ICCARepository interface {
	Create(ctx context.Context, account *models.CCAAccount) error
	FindByID(ctx context.Context, id uint) (*models.CCAAccount, error)
	FindByEmail(ctx context.Context, email string) (*models.CCAAccount, error)
}

// CCARepository implements ICCARepository.
type CCARepository struct {
	db   *gorm.DB
	base *BaseRepository[models.CCAAccount]
}

func NewCCARepository() ICCARepository {
	return NewCCARepositoryTx(configs.GetDB())
}

func NewCCARepositoryTx(tx *gorm.DB) ICCARepository {
	return &CCARepository{db: tx, base: NewBaseRepository[models.CCAAccount](tx)}
}

func (r *CCARepository) Create(ctx context.Context, account *models.CCAAccount) error {
	return r.base.Create(ctx, account)
}

func (r *CCARepository) FindByID(ctx context.Context, id uint) (*models.CCAAccount, error) {
	account, err := r.base.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			configslog.Log.Error("CCARepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
			err = ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

func (r *CCARepository) FindByEmail(ctx context.Context, email string) (*models.CCAAccount, error) {
	var account models.CCAAccount
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("CCARepository.FindByEmail: DB error", zap.Error(err))
		return nil, ErrNotFound
	}
	return &account, nil
}

var _ ICCARepository = (*CCARepository)(nil)
