package repositories

import (
	"context"
	"errors"
	"time"

	"ccaportal/configs"
	"ccaportal/configs/configslog"
	"ccaportal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmissionFilter narrows FindAllFiltered. Zero fields are ignored.
type SubmissionFilter struct {
	SocietyID     uint
	ExcludeStatus models.SubmissionStatus
	Statuses      []models.SubmissionStatus
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// ISubmissionRepository covers submission document persistence. Answer and
// note mutations are whole-document updates on a single row, mirroring the
// one-document-per-submission storage contract.
type ISubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	FindBySubmissionID(ctx context.Context, id uint) (*models.Submission, error)
	FindBySubmissionIDLocked(ctx context.Context, id uint) (*models.Submission, error)
	AppendAnswers(ctx context.Context, id uint, answers []models.ItemData, statusOverride *models.SubmissionStatus) error
	ClearAnswers(ctx context.Context, id uint) error
	AppendNote(ctx context.Context, id uint, kind models.NoteKind, note string) error
	SetStatus(ctx context.Context, id uint, status models.SubmissionStatus) error
	FindAllFiltered(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error)
}

// SubmissionRepository implements ISubmissionRepository.
type SubmissionRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Submission]
}

func NewSubmissionRepository() ISubmissionRepository {
	return NewSubmissionRepositoryTx(configs.GetDB())
}

func NewSubmissionRepositoryTx(tx *gorm.DB) ISubmissionRepository {
	return &SubmissionRepository{db: tx, base: NewBaseRepository[models.Submission](tx)}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return r.base.Create(ctx, submission)
}

func (r *SubmissionRepository) FindBySubmissionID(ctx context.Context, id uint) (*models.Submission, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	submission, err := r.base.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			configslog.Log.Error("SubmissionRepository.FindBySubmissionID: DB error", zap.Uint("id", id), zap.Error(err))
			err = ErrNotFound
		}
		return nil, err
	}
	return submission, nil
}

// FindBySubmissionIDLocked takes a row lock; only meaningful inside a
// transaction, where it serializes the read-modify-write of the document.
func (r *SubmissionRepository) FindBySubmissionIDLocked(ctx context.Context, id uint) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&submission, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SubmissionRepository.FindBySubmissionIDLocked: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, ErrNotFound
	}
	return &submission, nil
}

// AppendAnswers adds a round of validated answers and optionally moves the
// status in the same row update.
func (r *SubmissionRepository) AppendAnswers(ctx context.Context, id uint, answers []models.ItemData, statusOverride *models.SubmissionStatus) error {
	submission, err := r.FindBySubmissionIDLocked(ctx, id)
	if err != nil {
		return err
	}
	submission.ItemsData = append(submission.ItemsData, answers...)
	if statusOverride != nil {
		submission.Status = *statusOverride
	}
	return r.base.Save(ctx, submission)
}

// ClearAnswers drops every accumulated answer, used when an Issue status
// opens a full resubmission round.
func (r *SubmissionRepository) ClearAnswers(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Submission{}).
		Where("id = ?", id).
		Update("items_data", models.Submission{}.ItemsData).Error
}

func (r *SubmissionRepository) AppendNote(ctx context.Context, id uint, kind models.NoteKind, note string) error {
	submission, err := r.FindBySubmissionIDLocked(ctx, id)
	if err != nil {
		return err
	}
	entry := models.SubmissionNote{Note: note, TimestampCreated: time.Now().UTC()}
	switch kind {
	case models.NoteCCA:
		submission.CCANotes = append(submission.CCANotes, entry)
	default:
		submission.SocietyNotes = append(submission.SocietyNotes, entry)
	}
	return r.base.Save(ctx, submission)
}

func (r *SubmissionRepository) SetStatus(ctx context.Context, id uint, status models.SubmissionStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Submission{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		configslog.Log.Error("SubmissionRepository.SetStatus: DB error", zap.Uint("id", id), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SubmissionRepository) FindAllFiltered(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error) {
	query := r.db.WithContext(ctx).Model(&models.Submission{})
	if filter.SocietyID != 0 {
		query = query.Where("society_id = ?", filter.SocietyID)
	}
	if filter.ExcludeStatus != "" {
		query = query.Where("status <> ?", filter.ExcludeStatus)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.CreatedFrom != nil && filter.CreatedTo != nil {
		query = query.Where("created_at BETWEEN ? AND ?", *filter.CreatedFrom, *filter.CreatedTo)
	}

	var submissions []models.Submission
	if err := query.Order("created_at desc").Find(&submissions).Error; err != nil {
		configslog.Log.Error("SubmissionRepository.FindAllFiltered: DB error", zap.Error(err))
		return nil, err
	}
	return submissions, nil
}

var _ ISubmissionRepository = (*SubmissionRepository)(nil)
