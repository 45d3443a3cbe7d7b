package services

import (
	"context"
	"path"
	"strings"

	"ccaportal/models"
	"ccaportal/pkg/apperrors"
	"ccaportal/pkg/tokens"
	"ccaportal/repositories"
)

// FileBinding records a file record that passed validation and must be
// marked saved and linked to the form when the answers are committed. The
// validator never writes; bindings are applied by the caller inside the
// same transaction as the submission update.
type FileBinding struct {
	FileID uint
	ItemID uint
}

// ValidatedAnswers is the sanitized output of a validation pass: answer
// values coerced to their canonical types and file tokens replaced with
// stored file names.
type ValidatedAnswers struct {
	Items        []models.ItemData
	FileBindings []FileBinding
}

// AnswerValidator checks one round of submitted answers against a form
// template. Checks run in strict order and the first failure wins; the
// validator mutates neither the template nor the existing answers.
type AnswerValidator struct {
	files  repositories.IFileRepository
	signer *tokens.Signer
}

func NewAnswerValidator(files repositories.IFileRepository, signer *tokens.Signer) *AnswerValidator {
	return &AnswerValidator{files: files, signer: signer}
}

// Validate runs the four-stage check. existingAnswers holds the answers
// already accumulated on the submission (empty for a new submission or
// after an Issue reset). requireComplete enforces the required-item
// completeness check; it is set on the first submission and on the full
// resubmission round an Issue reset opens.
func (v *AnswerValidator) Validate(ctx context.Context, form *models.Form, incoming []models.ItemData, existingAnswers []models.ItemData, requireComplete bool) (*ValidatedAnswers, error) {
	// 1. Identity: every id must exist in the form, no duplicates in batch.
	seen := make(map[uint]struct{}, len(incoming))
	for _, answer := range incoming {
		if _, dup := seen[answer.ItemID]; dup {
			return nil, apperrors.NewValidation("item ids not unique")
		}
		seen[answer.ItemID] = struct{}{}
		if _, ok := ResolveItem(form, answer.ItemID); !ok {
			return nil, apperrors.NewValidation("item with id %d does not exist in form", answer.ItemID)
		}
	}

	// 2. Required-completeness against the currently visible item set.
	if requireComplete {
		visible := ExpandVisibleItems(form, incoming)
		answered := make(map[uint]struct{}, len(existingAnswers))
		for _, a := range existingAnswers {
			answered[a.ItemID] = struct{}{}
		}
		for _, item := range form.Items {
			if !item.Required || !item.Type.TakesInput() {
				continue
			}
			if _, vis := visible[item.ItemID]; !vis {
				continue
			}
			if _, ok := seen[item.ItemID]; ok {
				continue
			}
			if _, ok := answered[item.ItemID]; ok {
				continue
			}
			return nil, apperrors.NewValidation("required item with id %d has not been filled", item.ItemID)
		}
	}

	// 3. Type and value constraints per variant.
	result := &ValidatedAnswers{Items: make([]models.ItemData, 0, len(incoming))}
	for _, answer := range incoming {
		item, _ := ResolveItem(form, answer.ItemID)
		sanitized, binding, err := v.checkItemData(ctx, form, item, answer)
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, sanitized)
		if binding != nil {
			result.FileBindings = append(result.FileBindings, *binding)
		}
	}

	// 4. Re-entry: an item may carry at most one value.
	existing := make(map[uint]struct{}, len(existingAnswers))
	for _, a := range existingAnswers {
		existing[a.ItemID] = struct{}{}
	}
	for _, answer := range incoming {
		if _, ok := existing[answer.ItemID]; ok {
			return nil, apperrors.NewValidation("item with id %d already has a value", answer.ItemID)
		}
	}

	return result, nil
}

func (v *AnswerValidator) checkItemData(ctx context.Context, form *models.Form, item models.Item, answer models.ItemData) (models.ItemData, *FileBinding, error) {
	if !item.Type.TakesInput() {
		return models.ItemData{}, nil, apperrors.NewValidation("item with id %d type does not take any input", item.ItemID)
	}

	switch item.Type {
	case models.ItemTextbox:
		text, ok := answer.Data.(string)
		if !ok {
			return models.ItemData{}, nil, typeMismatch(item)
		}
		if len(text) > item.MaxLength {
			return models.ItemData{}, nil, apperrors.NewValidation("textbox with id %d has exceeded the max length allowed: %d", item.ItemID, item.MaxLength)
		}
		return models.ItemData{ItemID: item.ItemID, Data: text}, nil, nil

	case models.ItemDropdown, models.ItemRadio:
		index, ok := optionIndex(answer.Data)
		if !ok {
			return models.ItemData{}, nil, typeMismatch(item)
		}
		if index < 0 || index >= len(item.Options) {
			return models.ItemData{}, nil, apperrors.NewValidation("item with id %d has no such value in its options", item.ItemID)
		}
		return models.ItemData{ItemID: item.ItemID, Data: index}, nil, nil

	case models.ItemCheckbox:
		checked, ok := answer.Data.(bool)
		if !ok {
			return models.ItemData{}, nil, typeMismatch(item)
		}
		return models.ItemData{ItemID: item.ItemID, Data: checked}, nil, nil

	case models.ItemFile:
		token, ok := answer.Data.(string)
		if !ok {
			return models.ItemData{}, nil, typeMismatch(item)
		}
		return v.checkFileAnswer(ctx, form, item, token)
	}

	return models.ItemData{}, nil, typeMismatch(item)
}

// checkFileAnswer resolves an upload token to its record and verifies the
// record is still consumable and of an allowed type. The token is replaced
// with the file's canonical stored name.
func (v *AnswerValidator) checkFileAnswer(ctx context.Context, form *models.Form, item models.Item, token string) (models.ItemData, *FileBinding, error) {
	claims, err := v.signer.ParseUpload(token)
	if err != nil {
		return models.ItemData{}, nil, apperrors.NewValidation("item with id %d has an invalid upload token", item.ItemID)
	}
	file, err := v.files.FindByID(ctx, claims.FileID)
	if err != nil {
		return models.ItemData{}, nil, apperrors.NewValidation("item with id %d has not been uploaded", item.ItemID)
	}
	if file.Saved {
		return models.ItemData{}, nil, apperrors.NewValidation("item with id %d was already used", item.ItemID)
	}
	if file.FormID != nil && *file.FormID != form.ID {
		return models.ItemData{}, nil, apperrors.NewValidation("item with id %d is linked to another form, can't use it again", item.ItemID)
	}

	ext := strings.ToLower(path.Ext(file.Name))
	allowed := false
	for _, candidate := range item.AllowedExtensions() {
		if ext == candidate {
			allowed = true
			break
		}
	}
	if !allowed {
		return models.ItemData{}, nil, apperrors.NewValidation("item with id %d does not support this file type, file types allowed: %s", item.ItemID, item.FileTypes)
	}

	return models.ItemData{ItemID: item.ItemID, Data: file.Name},
		&FileBinding{FileID: file.ID, ItemID: item.ItemID}, nil
}

func typeMismatch(item models.Item) error {
	return apperrors.NewValidation("item with id %d has invalid data type, should be: %s", item.ItemID, string(item.Type.DataKind()))
}
