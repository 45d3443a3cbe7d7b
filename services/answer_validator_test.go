package services

import (
	"context"
	"testing"

	"ccaportal/models"
	"ccaportal/pkg/tokens"
	"ccaportal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFileRepo is an in-memory IFileRepository shared by the validator and
// submission service tests.
type fakeFileRepo struct {
	files map[uint]*models.File
	saved []uint
}

func newFakeFileRepo(files ...*models.File) *fakeFileRepo {
	repo := &fakeFileRepo{files: make(map[uint]*models.File)}
	for _, f := range files {
		repo.files[f.ID] = f
	}
	return repo
}

func (r *fakeFileRepo) Create(_ context.Context, file *models.File) error {
	file.ID = uint(len(r.files) + 1)
	r.files[file.ID] = file
	return nil
}

func (r *fakeFileRepo) FindByID(_ context.Context, id uint) (*models.File, error) {
	file, ok := r.files[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *file
	return &copied, nil
}

func (r *fakeFileRepo) MarkSaved(_ context.Context, id uint, formID uint) error {
	file, ok := r.files[id]
	if !ok {
		return repositories.ErrNotFound
	}
	file.Saved = true
	file.FormID = &formID
	r.saved = append(r.saved, id)
	return nil
}

var _ repositories.IFileRepository = (*fakeFileRepo)(nil)

func fileForm() *models.Form {
	form := testForm()
	form.ID = 11
	form.Items = append(form.Items, models.Item{
		ItemID: 6, Type: models.ItemFile, Label: "Proposal document",
		Required: false, DefaultVisibility: true, FileTypes: ".pdf, .docx",
	})
	form.Components[1].ItemsOrder = append(form.Components[1].ItemsOrder, 6)
	return form
}

func newTestValidator(files repositories.IFileRepository) (*AnswerValidator, *tokens.Signer) {
	signer := tokens.NewSigner("validator-test-secret")
	return NewAnswerValidator(files, signer), signer
}

func TestValidate_SanitizesAnswers(t *testing.T) {
	validator, _ := newTestValidator(newFakeFileRepo())
	form := testForm()

	incoming := []models.ItemData{
		{ItemID: 1, Data: "Orientation Camp"},
		{ItemID: 2, Data: float64(1)},
		{ItemID: 5, Data: true},
	}
	result, err := validator.Validate(context.Background(), form, incoming, nil, true)
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "Orientation Camp", result.Items[0].Data)
	assert.Equal(t, 1, result.Items[1].Data, "option index coerced from float64")
	assert.Equal(t, true, result.Items[2].Data)
	assert.Empty(t, result.FileBindings)
}

func TestValidate_IdentityChecks(t *testing.T) {
	validator, _ := newTestValidator(newFakeFileRepo())
	form := testForm()

	_, err := validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 1, Data: "a"},
		{ItemID: 1, Data: "b"},
	}, nil, true)
	require.Error(t, err)
	assert.EqualError(t, err, "item ids not unique")

	_, err = validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 99, Data: "a"},
	}, nil, false)
	require.Error(t, err)
	assert.EqualError(t, err, "item with id 99 does not exist in form")
}

func TestValidate_RequiredCompleteness(t *testing.T) {
	validator, _ := newTestValidator(newFakeFileRepo())
	form := testForm()

	// Item 2 is required and visible but missing.
	_, err := validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 1, Data: "Orientation Camp"},
	}, nil, true)
	require.Error(t, err)
	assert.EqualError(t, err, "required item with id 2 has not been filled")

	// Answering option 0 of item 2 unlocks required item 4, which must then
	// be filled in the same round.
	_, err = validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 1, Data: "Orientation Camp"},
		{ItemID: 2, Data: 0},
	}, nil, true)
	require.Error(t, err)
	assert.EqualError(t, err, "required item with id 4 has not been filled")

	// With item 4 filled the round is complete.
	_, err = validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 1, Data: "Orientation Camp"},
		{ItemID: 2, Data: 0},
		{ItemID: 4, Data: "LT27"},
	}, nil, true)
	assert.NoError(t, err)

	// Items answered in a prior round satisfy completeness.
	_, err = validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 1, Data: "Orientation Camp"},
	}, []models.ItemData{{ItemID: 2, Data: 1}}, true)
	assert.NoError(t, err)
}

func TestValidate_PartialRoundSkipsCompleteness(t *testing.T) {
	validator, _ := newTestValidator(newFakeFileRepo())
	form := testForm()

	_, err := validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 5, Data: true},
	}, nil, false)
	assert.NoError(t, err)
}

func TestValidate_VariantConstraints(t *testing.T) {
	validator, _ := newTestValidator(newFakeFileRepo())
	form := testForm()

	_, err := validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 1, Data: "this event name is way past the fifty character limit set on the item"},
	}, nil, false)
	require.Error(t, err)
	assert.EqualError(t, err, "textbox with id 1 has exceeded the max length allowed: 50")

	_, err = validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 2, Data: 7},
	}, nil, false)
	require.Error(t, err)
	assert.EqualError(t, err, "item with id 2 has no such value in its options")

	_, err = validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 5, Data: "yes"},
	}, nil, false)
	require.Error(t, err)
	assert.EqualError(t, err, "item with id 5 has invalid data type, should be: boolean")

	// Display-only items never take input.
	_, err = validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 3, Data: "hello"},
	}, nil, false)
	require.Error(t, err)
	assert.EqualError(t, err, "item with id 3 type does not take any input")
}

func TestValidate_ReEntryRejected(t *testing.T) {
	validator, _ := newTestValidator(newFakeFileRepo())
	form := testForm()

	existing := []models.ItemData{{ItemID: 5, Data: false}}
	_, err := validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 5, Data: true},
	}, existing, false)
	require.Error(t, err)
	assert.EqualError(t, err, "item with id 5 already has a value")
}

func TestValidate_TypeErrorBeatsReEntry(t *testing.T) {
	validator, _ := newTestValidator(newFakeFileRepo())
	form := testForm()

	// The answer is both already present and type-invalid; the type check
	// runs first so its error wins.
	existing := []models.ItemData{{ItemID: 5, Data: false}}
	_, err := validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 5, Data: "yes"},
	}, existing, false)
	require.Error(t, err)
	assert.EqualError(t, err, "item with id 5 has invalid data type, should be: boolean")
}

func TestValidate_FileAnswer(t *testing.T) {
	files := newFakeFileRepo(&models.File{
		BaseModel:    models.BaseModel{ID: 7},
		Name:         "3f6c0a-proposal.pdf",
		OriginalName: "proposal.pdf",
	})
	validator, signer := newTestValidator(files)
	form := fileForm()

	token, err := signer.SignUpload(7)
	require.NoError(t, err)

	result, err := validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 6, Data: token},
	}, nil, false)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "3f6c0a-proposal.pdf", result.Items[0].Data, "token replaced by the stored name")
	require.Len(t, result.FileBindings, 1)
	assert.Equal(t, FileBinding{FileID: 7, ItemID: 6}, result.FileBindings[0])

	// The validator itself never writes.
	assert.Empty(t, files.saved)
}

func TestValidate_FileAnswerRejections(t *testing.T) {
	otherForm := uint(99)
	files := newFakeFileRepo(
		&models.File{BaseModel: models.BaseModel{ID: 1}, Name: "a.pdf", Saved: true},
		&models.File{BaseModel: models.BaseModel{ID: 2}, Name: "b.pdf", FormID: &otherForm},
		&models.File{BaseModel: models.BaseModel{ID: 3}, Name: "c.png"},
	)
	validator, signer := newTestValidator(files)
	form := fileForm()

	_, err := validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 6, Data: "not-a-token"},
	}, nil, false)
	require.Error(t, err)
	assert.EqualError(t, err, "item with id 6 has an invalid upload token")

	missing, err := signer.SignUpload(42)
	require.NoError(t, err)
	_, err = validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 6, Data: missing},
	}, nil, false)
	require.Error(t, err)
	assert.EqualError(t, err, "item with id 6 has not been uploaded")

	used, err := signer.SignUpload(1)
	require.NoError(t, err)
	_, err = validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 6, Data: used},
	}, nil, false)
	require.Error(t, err)
	assert.EqualError(t, err, "item with id 6 was already used")

	linked, err := signer.SignUpload(2)
	require.NoError(t, err)
	_, err = validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 6, Data: linked},
	}, nil, false)
	require.Error(t, err)
	assert.EqualError(t, err, "item with id 6 is linked to another form, can't use it again")

	wrongType, err := signer.SignUpload(3)
	require.NoError(t, err)
	_, err = validator.Validate(context.Background(), form, []models.ItemData{
		{ItemID: 6, Data: wrongType},
	}, nil, false)
	require.Error(t, err)
	assert.EqualError(t, err, "item with id 6 does not support this file type, file types allowed: .pdf, .docx")
}
