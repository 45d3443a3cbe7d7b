package services

import (
	"context"
	"errors"
	"time"

	"ccaportal/configs"
	"ccaportal/configs/configslog"
	"ccaportal/models"
	"ccaportal/pkg/apperrors"
	"ccaportal/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubmissionListFilter narrows ListSubmissions for CCA actors. Society
// actors are always scoped to their own non-completed submissions.
type SubmissionListFilter struct {
	StatusList []models.SubmissionStatus
	DateStart  *time.Time
	DateEnd    *time.Time
}

// SubmitFormResult reports a successful submit round.
type SubmitFormResult struct {
	SubmissionID      uint      `json:"submissionId"`
	TimestampCreated  time.Time `json:"timestampCreated"`
	TimestampModified time.Time `json:"timestampModified"`
}

// SubmissionSummary is one row of a submission listing, joined with the
// owning society and form.
type SubmissionSummary struct {
	SubmissionID        uint                    `json:"submissionId"`
	SocietyID           uint                    `json:"societyId"`
	Status              models.SubmissionStatus `json:"status"`
	FormID              uint                    `json:"formId"`
	FormTitle           string                  `json:"formTitle"`
	SocietyName         string                  `json:"societyName"`
	SocietyNameInitials string                  `json:"societyNameInitials"`
	TimestampCreated    time.Time               `json:"timestampCreated"`
	TimestampModified   time.Time               `json:"timestampModified"`
}

// SubmissionDetail is the full view of one submission.
type SubmissionDetail struct {
	SubmissionID  uint                    `json:"submissionId"`
	FormID        uint                    `json:"formId"`
	Status        models.SubmissionStatus `json:"status"`
	ItemsData     []models.ItemData       `json:"itemsData"`
	ItemFilledIDs []uint                  `json:"itemFilledIds"`
	SocietyNotes  []models.SubmissionNote `json:"societyNotes"`
	CCANotes      []models.SubmissionNote `json:"ccaNotes"`
}

// ReviewContext is what a President/Patron review token resolves to.
type ReviewContext struct {
	FormID       uint `json:"formId"`
	SubmissionID uint `json:"submissionId"`
}

// ISubmissionService exposes the submission lifecycle operations.
type ISubmissionService interface {
	SubmitForm(ctx context.Context, actor models.Actor, formID uint, submissionID uint, itemsData []models.ItemData) (*SubmitFormResult, error)
	UpdateStatus(ctx context.Context, actor models.Actor, submissionID uint, newStatus models.SubmissionStatus, issue string) error
	AddNote(ctx context.Context, submissionID uint, kind models.NoteKind, note string) error
	ListSubmissions(ctx context.Context, actor models.Actor, filter SubmissionListFilter) ([]SubmissionSummary, error)
	FetchSubmission(ctx context.Context, submissionID uint) (*SubmissionDetail, error)
	FetchReviewContext(ctx context.Context, actor models.Actor) (*ReviewContext, error)
}

// SubmissionService drives the submission lifecycle state machine. All
// durable state lives in the store; each operation is request-scoped.
//
// Concurrency note: concurrent submits against the same submission id are
// serialized only by the row lock inside the commit transaction;
// last-write-wins on the document update is accepted behavior here.
type SubmissionService struct {
	db          *gorm.DB
	submissions repositories.ISubmissionRepository
	forms       repositories.IFormRepository
	societies   repositories.ISocietyRepository
	validator   *AnswerValidator
	notifier    INotifier

	// transact and the tx constructors are swapped out by tests.
	transact         func(fn func(tx *gorm.DB) error) error
	submissionRepoTx func(tx *gorm.DB) repositories.ISubmissionRepository
	fileRepoTx       func(tx *gorm.DB) repositories.IFileRepository
}

// NewSubmissionService wires the service against the shared DB handle.
func NewSubmissionService(validator *AnswerValidator, notifier INotifier) ISubmissionService {
	db := configs.GetDB()
	return &SubmissionService{
		db:               db,
		submissions:      repositories.NewSubmissionRepository(),
		forms:            repositories.NewFormRepository(),
		societies:        repositories.NewSocietyRepository(),
		validator:        validator,
		notifier:         notifier,
		transact:         func(fn func(tx *gorm.DB) error) error { return db.Transaction(fn) },
		submissionRepoTx: repositories.NewSubmissionRepositoryTx,
		fileRepoTx:       repositories.NewFileRepositoryTx,
	}
}

// SubmitForm handles both a brand-new submission (submissionID zero) and a
// full resubmission round while the submission sits in an Issue status.
// The file-record binds and the submission write commit in one transaction
// so a crash cannot leave a file marked saved without its answer recorded.
func (s *SubmissionService) SubmitForm(ctx context.Context, actor models.Actor, formID uint, submissionID uint, itemsData []models.ItemData) (*SubmitFormResult, error) {
	if actor.Role != models.RoleSociety {
		return nil, apperrors.NewForbidden("only societies may submit forms")
	}

	form, err := s.forms.FindByFormID(ctx, formID)
	if err != nil {
		return nil, apperrors.NewFormNotFound("invalid form id")
	}

	if submissionID == 0 {
		return s.createSubmission(ctx, actor, form, itemsData)
	}
	return s.resubmit(ctx, actor, form, submissionID, itemsData)
}

func (s *SubmissionService) createSubmission(ctx context.Context, actor models.Actor, form *models.Form, itemsData []models.ItemData) (*SubmitFormResult, error) {
	validated, err := s.validator.Validate(ctx, form, itemsData, nil, true)
	if err != nil {
		return nil, err
	}

	submission := &models.Submission{
		FormID:    form.ID,
		SocietyID: actor.ID,
		Status:    models.StatusPendingPresident,
		ItemsData: validated.Items,
	}
	err = s.transact(func(tx *gorm.DB) error {
		if err := s.bindFiles(ctx, tx, form.ID, validated.FileBindings); err != nil {
			return err
		}
		return s.submissionRepoTx(tx).Create(ctx, submission)
	})
	if err != nil {
		return nil, err
	}
	configslog.SLog.Infof("submission %d created for form %d by society %d", submission.ID, form.ID, actor.ID)

	s.notifyReview(ctx, actor.ID, submission.ID, models.RolePresident)

	return &SubmitFormResult{
		SubmissionID:      submission.ID,
		TimestampCreated:  submission.CreatedAt,
		TimestampModified: submission.UpdatedAt,
	}, nil
}

func (s *SubmissionService) resubmit(ctx context.Context, actor models.Actor, form *models.Form, submissionID uint, itemsData []models.ItemData) (*SubmitFormResult, error) {
	submission, err := s.submissions.FindBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, apperrors.NewSubmissionNotFound("invalid submission id")
	}
	if submission.SocietyID != actor.ID {
		return nil, apperrors.NewForbidden("submission belongs to another society")
	}

	// A society may only resubmit while a reviewer has raised an issue;
	// the issue reset clears the prior round so validation runs against an
	// empty answer set.
	advance, ok := autoAdvanceRules[submission.Status]
	if !ok {
		return nil, apperrors.NewValidation("this submission's status cannot be changed at this moment")
	}

	validated, err := s.validator.Validate(ctx, form, itemsData, nil, true)
	if err != nil {
		return nil, err
	}

	err = s.transact(func(tx *gorm.DB) error {
		submissionRepo := s.submissionRepoTx(tx)
		if err := submissionRepo.ClearAnswers(ctx, submission.ID); err != nil {
			return err
		}
		if err := s.bindFiles(ctx, tx, form.ID, validated.FileBindings); err != nil {
			return err
		}
		next := advance.Next
		return submissionRepo.AppendAnswers(ctx, submission.ID, validated.Items, &next)
	})
	if err != nil {
		return nil, err
	}
	configslog.SLog.Infof("submission %d resubmitted, status %s → %s", submission.ID, submission.Status, advance.Next)

	s.notifyReview(ctx, actor.ID, submission.ID, advance.Reviewer)

	return &SubmitFormResult{
		SubmissionID:      submission.ID,
		TimestampCreated:  submission.CreatedAt,
		TimestampModified: time.Now().UTC(),
	}, nil
}

func (s *SubmissionService) bindFiles(ctx context.Context, tx *gorm.DB, formID uint, bindings []FileBinding) error {
	if len(bindings) == 0 {
		return nil
	}
	fileRepo := s.fileRepoTx(tx)
	for _, binding := range bindings {
		if err := fileRepo.MarkSaved(ctx, binding.FileID, formID); err != nil {
			return err
		}
	}
	return nil
}

// notifyReview mails the next reviewer in the chain. Failures in this path
// are logged and never affect the committed write.
func (s *SubmissionService) notifyReview(ctx context.Context, societyID, submissionID uint, reviewer models.ActorRole) {
	society, err := s.societies.FindByID(ctx, societyID)
	if err != nil {
		configslog.Log.Error("review notification skipped, society lookup failed",
			zap.Uint("societyId", societyID), zap.Error(err))
		return
	}
	recipient := society.PresidentEmail
	if reviewer == models.RolePatron {
		recipient = society.PatronEmail
	}
	s.notifier.SendReview(recipient, reviewer, society.NameInitials, submissionID, society.ID)
}

// UpdateStatus applies a role-gated transition. The role whitelist is
// checked before anything else; naming a status outside the role's set, or
// naming one while the precondition does not hold, is a validation error.
func (s *SubmissionService) UpdateStatus(ctx context.Context, actor models.Actor, submissionID uint, newStatus models.SubmissionStatus, issue string) error {
	submission, err := s.submissions.FindBySubmissionID(ctx, submissionID)
	if err != nil {
		return apperrors.NewSubmissionNotFound("invalid submission ID, submission not found")
	}

	rule, ok := lookupTransition(actor.Role, newStatus)
	if !ok {
		return apperrors.NewValidation("invalid status, allowed statuses are: %v", allowedTargets(actor.Role))
	}
	if rule.RequireCurrent != nil && submission.Status != *rule.RequireCurrent {
		return apperrors.NewValidation("this submission's status cannot be changed at this moment")
	}

	if err := s.submissions.SetStatus(ctx, submission.ID, newStatus); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewSubmissionNotFound("invalid submission ID, submission not found")
		}
		return err
	}
	configslog.SLog.Infof("submission %d status set to %s by %s", submission.ID, newStatus, actor.Role)

	switch rule.Notify {
	case notifyIssueToSociety:
		if issue != "" {
			s.notifyIssue(ctx, submission, actor.Role, issue)
		}
	case notifyReviewToPatron:
		s.notifyReview(ctx, submission.SocietyID, submission.ID, models.RolePatron)
	}
	return nil
}

func (s *SubmissionService) notifyIssue(ctx context.Context, submission *models.Submission, issuer models.ActorRole, issue string) {
	society, err := s.societies.FindByID(ctx, submission.SocietyID)
	if err != nil {
		configslog.Log.Error("issue notification skipped, society lookup failed",
			zap.Uint("societyId", submission.SocietyID), zap.Error(err))
		return
	}
	issuerEmail := society.PresidentEmail
	if issuer == models.RolePatron {
		issuerEmail = society.PatronEmail
	}
	s.notifier.SendIssue(society.Email, issue, submission.ID, issuer, issuerEmail)
}

// AddNote appends an annotation to the selected note list. Notes never
// alter the submission status.
func (s *SubmissionService) AddNote(ctx context.Context, submissionID uint, kind models.NoteKind, note string) error {
	if _, err := s.submissions.FindBySubmissionID(ctx, submissionID); err != nil {
		return apperrors.NewSubmissionNotFound("invalid submission ID, submission not found")
	}
	return s.submissions.AppendNote(ctx, submissionID, kind, note)
}

// ListSubmissions applies role-scoped filters: a society sees only its own
// non-completed submissions; CCA may filter by a validated status
// allow-list and a creation-date range.
func (s *SubmissionService) ListSubmissions(ctx context.Context, actor models.Actor, filter SubmissionListFilter) ([]SubmissionSummary, error) {
	var storeFilter repositories.SubmissionFilter

	switch actor.Role {
	case models.RoleSociety:
		storeFilter.SocietyID = actor.ID
		storeFilter.ExcludeStatus = models.StatusCompleted
	case models.RoleCCA:
		if len(filter.StatusList) > 0 {
			if err := validateStatusFilter(filter.StatusList); err != nil {
				return nil, err
			}
			storeFilter.Statuses = filter.StatusList
		}
		storeFilter.CreatedFrom = filter.DateStart
		storeFilter.CreatedTo = filter.DateEnd
	default:
		return nil, apperrors.NewForbidden("forbidden access to resource")
	}

	submissions, err := s.submissions.FindAllFiltered(ctx, storeFilter)
	if err != nil {
		return nil, err
	}
	if len(submissions) == 0 {
		return nil, apperrors.NewSubmissionNotFound("there are no existing submissions")
	}

	societyIDs := make([]uint, 0, len(submissions))
	formIDs := make([]uint, 0, len(submissions))
	for _, sub := range submissions {
		societyIDs = append(societyIDs, sub.SocietyID)
		formIDs = append(formIDs, sub.FormID)
	}
	societies, err := s.societies.FindByIDs(ctx, societyIDs)
	if err != nil {
		return nil, err
	}
	formTitles, err := s.forms.FindTitlesByIDs(ctx, formIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]SubmissionSummary, 0, len(submissions))
	for _, sub := range submissions {
		society := societies[sub.SocietyID]
		summaries = append(summaries, SubmissionSummary{
			SubmissionID:        sub.ID,
			SocietyID:           sub.SocietyID,
			Status:              sub.Status,
			FormID:              sub.FormID,
			FormTitle:           formTitles[sub.FormID],
			SocietyName:         society.Name,
			SocietyNameInitials: society.NameInitials,
			TimestampCreated:    sub.CreatedAt,
			TimestampModified:   sub.UpdatedAt,
		})
	}
	return summaries, nil
}

// FetchSubmission returns the full view of one submission.
func (s *SubmissionService) FetchSubmission(ctx context.Context, submissionID uint) (*SubmissionDetail, error) {
	submission, err := s.submissions.FindBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, apperrors.NewSubmissionNotFound("invalid submission ID, submission not found")
	}
	return &SubmissionDetail{
		SubmissionID:  submission.ID,
		FormID:        submission.FormID,
		Status:        submission.Status,
		ItemsData:     submission.ItemsData,
		ItemFilledIDs: submission.AnsweredItemIDs(),
		SocietyNotes:  submission.SocietyNotes,
		CCANotes:      submission.CCANotes,
	}, nil
}

// FetchReviewContext resolves a reviewer's token to the submission and form
// it was issued for.
func (s *SubmissionService) FetchReviewContext(ctx context.Context, actor models.Actor) (*ReviewContext, error) {
	if actor.SubmissionID == 0 {
		return nil, apperrors.NewSubmissionNotFound("review token does not reference a submission")
	}
	submission, err := s.submissions.FindBySubmissionID(ctx, actor.SubmissionID)
	if err != nil {
		return nil, apperrors.NewSubmissionNotFound("invalid submission ID, submission not found")
	}
	return &ReviewContext{FormID: submission.FormID, SubmissionID: submission.ID}, nil
}

var _ ISubmissionService = (*SubmissionService)(nil)
