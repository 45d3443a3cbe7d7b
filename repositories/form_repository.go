package repositories

import (
	"context"
	"errors"

	"ccaportal/configs"
	"ccaportal/configs/configslog"
	"ccaportal/models"
	"ccaportal/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IFormRepository covers form template persistence.
type IFormRepository interface {
	Create(ctx context.Context, form *models.Form) error
	FindByFormID(ctx context.Context, id uint) (*models.Form, error)
	Update(ctx context.Context, form *models.Form) error
	Delete(ctx context.Context, form *models.Form) error
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Form, int64, error)
	FindTitlesByIDs(ctx context.Context, ids []uint) (map[uint]string, error)
	CountAll(ctx context.Context) (int64, error)
}

// FormRepository implements IFormRepository.
type FormRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Form]
}

// NewFormRepository wires the repository against the shared DB handle.
func NewFormRepository() IFormRepository {
	return NewFormRepositoryTx(configs.GetDB())
}

// NewFormRepositoryTx wires the repository against an open transaction.
func NewFormRepositoryTx(tx *gorm.DB) IFormRepository {
	base := NewBaseRepository[models.Form](tx)
	base.SetAllowedSortColumns([]string{"id", "created_at", "title", "is_public"})
	return &FormRepository{db: tx, base: base}
}

func (r *FormRepository) Create(ctx context.Context, form *models.Form) error {
	return r.base.Create(ctx, form)
}

func (r *FormRepository) FindByFormID(ctx context.Context, id uint) (*models.Form, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	form, err := r.base.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			configslog.Log.Error("FormRepository.FindByFormID: DB error", zap.Uint("id", id), zap.Error(err))
			err = ErrNotFound
		}
		return nil, err
	}
	return form, nil
}

func (r *FormRepository) Update(ctx context.Context, form *models.Form) error {
	return r.base.Save(ctx, form)
}

func (r *FormRepository) Delete(ctx context.Context, form *models.Form) error {
	return r.base.Delete(ctx, form)
}

func (r *FormRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Form, int64, error) {
	var forms []models.Form
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.Form{})
	if params.Title != "" {
		query = query.Where("title ILIKE ?", "%"+params.Title+"%")
	}
	if params.Status != "" {
		query = query.Where("is_public = ?", params.Status == "true")
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("FormRepository.FindAllPaginated: count error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return forms, 0, nil
	}

	sortBy := params.SortBy
	if !r.base.AllowedSortColumn(sortBy) {
		sortBy = "created_at"
	}
	err := query.
		Order(sortBy + " " + params.OrderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&forms).Error
	if err != nil {
		configslog.Log.Error("FormRepository.FindAllPaginated: find error", zap.Error(err))
		return nil, totalCount, err
	}
	return forms, totalCount, nil
}

// FindTitlesByIDs resolves form titles in bulk for submission listings.
func (r *FormRepository) FindTitlesByIDs(ctx context.Context, ids []uint) (map[uint]string, error) {
	titles := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}
	var rows []struct {
		ID    uint
		Title string
	}
	err := r.db.WithContext(ctx).Model(&models.Form{}).
		Select("id", "title").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		titles[row.ID] = row.Title
	}
	return titles, nil
}

func (r *FormRepository) CountAll(ctx context.Context) (int64, error) {
	return r.base.CountAll(ctx)
}

var _ IFormRepository = (*FormRepository)(nil)
