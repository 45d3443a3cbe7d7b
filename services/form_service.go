package services

import (
	"context"

	"ccaportal/configs/configslog"
	"ccaportal/models"
	"ccaportal/pkg/apperrors"
	"ccaportal/pkg/queryparams"
	"ccaportal/repositories"
)

// IFormService covers form template authoring. Templates are authored by
// CCA staff and never mutated by submission processing.
type IFormService interface {
	CreateForm(ctx context.Context, creatorID uint, form models.Form) (*models.Form, error)
	EditForm(ctx context.Context, formID uint, form models.Form) (*models.Form, error)
	DeleteForm(ctx context.Context, formID uint) error
	FetchForm(ctx context.Context, formID uint) (*models.Form, error)
	FetchFormList(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	ChangeFormStatus(ctx context.Context, formID uint, isPublic bool) error
	FetchChecklist(ctx context.Context, formID uint) ([]models.ChecklistItem, error)
}

// FormService implements IFormService.
type FormService struct {
	repo repositories.IFormRepository
}

func NewFormService() IFormService {
	return &FormService{repo: repositories.NewFormRepository()}
}

// CreateForm validates the template tree and stores it. The form id is
// assigned by storage.
func (s *FormService) CreateForm(ctx context.Context, creatorID uint, form models.Form) (*models.Form, error) {
	if form.Title == "" {
		return nil, apperrors.NewValidation("form title is required")
	}
	if err := ValidateTemplate(&form); err != nil {
		return nil, err
	}
	form.ID = 0
	form.CreatorID = creatorID
	if err := s.repo.Create(ctx, &form); err != nil {
		configslog.SLog.Errorf("form creation failed: %v", err)
		return nil, err
	}
	configslog.SLog.Infof("form %d created: %s", form.ID, form.Title)
	return &form, nil
}

// EditForm replaces the stored template with the incoming one after
// integrity validation. Sections, components and items removed by the edit
// must already be scrubbed from every order list and conditionalItems
// mapping; ValidateTemplate rejects the template otherwise.
func (s *FormService) EditForm(ctx context.Context, formID uint, form models.Form) (*models.Form, error) {
	existing, err := s.repo.FindByFormID(ctx, formID)
	if err != nil {
		return nil, apperrors.NewFormNotFound("invalid form id")
	}
	if form.Title == "" {
		return nil, apperrors.NewValidation("form title is required")
	}
	if err := ValidateTemplate(&form); err != nil {
		return nil, err
	}

	existing.Title = form.Title
	existing.IsPublic = form.IsPublic
	existing.Sections = form.Sections
	existing.Components = form.Components
	existing.Items = form.Items
	existing.ChecklistItems = form.ChecklistItems
	if err := s.repo.Update(ctx, existing); err != nil {
		configslog.SLog.Errorf("form %d update failed: %v", formID, err)
		return nil, err
	}
	return existing, nil
}

func (s *FormService) DeleteForm(ctx context.Context, formID uint) error {
	form, err := s.repo.FindByFormID(ctx, formID)
	if err != nil {
		return apperrors.NewFormNotFound("invalid form id")
	}
	return s.repo.Delete(ctx, form)
}

func (s *FormService) FetchForm(ctx context.Context, formID uint) (*models.Form, error) {
	form, err := s.repo.FindByFormID(ctx, formID)
	if err != nil {
		return nil, apperrors.NewFormNotFound("invalid form id")
	}
	return form, nil
}

func (s *FormService) FetchFormList(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	forms, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: forms,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// ChangeFormStatus toggles template visibility to societies.
func (s *FormService) ChangeFormStatus(ctx context.Context, formID uint, isPublic bool) error {
	form, err := s.repo.FindByFormID(ctx, formID)
	if err != nil {
		return apperrors.NewFormNotFound("invalid form id")
	}
	form.IsPublic = isPublic
	return s.repo.Update(ctx, form)
}

// FetchChecklist returns the per-section checklist used to seed downstream
// request tasks, in section order.
func (s *FormService) FetchChecklist(ctx context.Context, formID uint) ([]models.ChecklistItem, error) {
	form, err := s.repo.FindByFormID(ctx, formID)
	if err != nil {
		return nil, apperrors.NewFormNotFound("invalid form id")
	}
	ordered := make([]models.ChecklistItem, 0, len(form.ChecklistItems))
	for _, section := range form.Sections {
		for _, entry := range form.ChecklistItems {
			if entry.SectionID == section.SectionID {
				ordered = append(ordered, entry)
			}
		}
	}
	return ordered, nil
}

var _ IFormService = (*FormService)(nil)
