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

// IFileRepository covers uploaded-file records.
type IFileRepository interface {
	Create(ctx context.Context, file *models.File) error
	FindByID(ctx context.Context, id uint) (*models.File, error)
	MarkSaved(ctx context.Context, id uint, formID uint) error
}

// FileRepository implements IFileRepository.
type FileRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.File]
}

func NewFileRepository() IFileRepository {
	return NewFileRepositoryTx(configs.GetDB())
}

func NewFileRepositoryTx(tx *gorm.DB) IFileRepository {
	return &FileRepository{db: tx, base: NewBaseRepository[models.File](tx)}
}

func (r *FileRepository) Create(ctx context.Context, file *models.File) error {
	return r.base.Create(ctx, file)
}

func (r *FileRepository) FindByID(ctx context.Context, id uint) (*models.File, error) {
	file, err := r.base.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			configslog.Log.Error("FileRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
			err = ErrNotFound
		}
		return nil, err
	}
	return file, nil
}

// MarkSaved consumes the record: it becomes owned by the given form and can
// never be bound to another answer.
func (r *FileRepository) MarkSaved(ctx context.Context, id uint, formID uint) error {
	res := r.db.WithContext(ctx).Model(&models.File{}).
		Where("id = ?", id).
		Updates(map[string]any{"saved": true, "form_id": formID})
	if res.Error != nil {
		configslog.Log.Error("FileRepository.MarkSaved: DB error", zap.Uint("id", id), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IFileRepository = (*FileRepository)(nil)
