package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by every repository when a row does not exist.
// Services translate it into the caller-facing error taxonomy so storage
// errors never leak upward.
var ErrNotFound = errors.New("record not found")

// IBaseRepository provides the CRUD operations shared by all entities.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, entity *T) error
	CountAll(ctx context.Context) (int64, error)
	SetAllowedSortColumns(cols []string)
	AllowedSortColumn(col string) bool
}

// BaseRepository is the generic GORM-backed implementation embedded by the
// concrete repositories.
type BaseRepository[T any] struct {
	db          *gorm.DB
	sortColumns map[string]struct{}
}

func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db, sortColumns: map[string]struct{}{}}
}

func (r *BaseRepository[T]) SetAllowedSortColumns(cols []string) {
	r.sortColumns = make(map[string]struct{}, len(cols))
	for _, c := range cols {
		r.sortColumns[c] = struct{}{}
	}
}

func (r *BaseRepository[T]) AllowedSortColumn(col string) bool {
	_, ok := r.sortColumns[col]
	return ok
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *BaseRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *BaseRepository[T]) Delete(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Delete(entity).Error
}

func (r *BaseRepository[T]) CountAll(ctx context.Context) (int64, error) {
	var entity T
	var count int64
	err := r.db.WithContext(ctx).Model(&entity).Count(&count).Error
	return count, err
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)
