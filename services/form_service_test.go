package services

import (
	"context"
	"testing"

	"ccaportal/models"
	"ccaportal/pkg/apperrors"
	"ccaportal/pkg/queryparams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFormService(forms ...*models.Form) (*FormService, *fakeFormRepo) {
	repo := newFakeFormRepo(forms...)
	return &FormService{repo: repo}, repo
}

func TestCreateForm(t *testing.T) {
	service, repo := newTestFormService()

	created, err := service.CreateForm(context.Background(), 3, *testForm())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, uint(3), created.CreatorID)
	assert.Contains(t, repo.forms, created.ID)
}

func TestCreateForm_Rejections(t *testing.T) {
	service, _ := newTestFormService()

	untitled := *testForm()
	untitled.Title = ""
	_, err := service.CreateForm(context.Background(), 3, untitled)
	assertValidationError(t, err)

	broken := *testForm()
	broken.Components[0].ItemsOrder = append(broken.Components[0].ItemsOrder, 42)
	_, err = service.CreateForm(context.Background(), 3, broken)
	assertValidationError(t, err)
}

func TestEditForm_ReplacesTemplate(t *testing.T) {
	existing := testForm()
	existing.ID = 9
	service, repo := newTestFormService(existing)

	edited := *testForm()
	edited.Title = "Event Proposal v2"
	RemoveItems(&edited, []uint{4})

	result, err := service.EditForm(context.Background(), 9, edited)
	require.NoError(t, err)
	assert.Equal(t, "Event Proposal v2", result.Title)
	_, found := ResolveItem(repo.forms[9], 4)
	assert.False(t, found)
}

func TestEditForm_RejectsDanglingReferences(t *testing.T) {
	existing := testForm()
	existing.ID = 9
	service, _ := newTestFormService(existing)

	// Removing an item without scrubbing its references must not pass.
	edited := *testForm()
	kept := edited.Items[:0]
	for _, item := range edited.Items {
		if item.ItemID != 4 {
			kept = append(kept, item)
		}
	}
	edited.Items = kept

	_, err := service.EditForm(context.Background(), 9, edited)
	assertValidationError(t, err)
}

func TestEditForm_UnknownForm(t *testing.T) {
	service, _ := newTestFormService()
	_, err := service.EditForm(context.Background(), 404, *testForm())
	assertFormNotFound(t, err)
}

func TestDeleteForm(t *testing.T) {
	existing := testForm()
	existing.ID = 9
	service, repo := newTestFormService(existing)

	require.NoError(t, service.DeleteForm(context.Background(), 9))
	assert.NotContains(t, repo.forms, uint(9))

	assertFormNotFound(t, service.DeleteForm(context.Background(), 9))
}

func TestChangeFormStatus(t *testing.T) {
	existing := testForm()
	existing.ID = 9
	service, repo := newTestFormService(existing)

	require.NoError(t, service.ChangeFormStatus(context.Background(), 9, true))
	assert.True(t, repo.forms[9].IsPublic)

	assertFormNotFound(t, service.ChangeFormStatus(context.Background(), 404, true))
}

func TestFetchFormList(t *testing.T) {
	service, _ := newTestFormService()

	result, err := service.FetchFormList(context.Background(), queryparams.DefaultListParams("created_at"))
	require.NoError(t, err)
	assert.Equal(t, queryparams.DefaultPage, result.Meta.CurrentPage)
}

func TestFetchChecklist_SectionOrder(t *testing.T) {
	form := testForm()
	form.ID = 9
	form.Sections = append(form.Sections, models.Section{SectionID: 2, Title: "Safety"})
	form.ChecklistItems = []models.ChecklistItem{
		{SectionID: 2, Description: "Review risk assessment"},
		{SectionID: 1, Description: "Verify budget"},
	}
	service, _ := newTestFormService(form)

	checklist, err := service.FetchChecklist(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, checklist, 2)
	assert.Equal(t, "Verify budget", checklist[0].Description, "entries follow section order, not declaration order")
	assert.Equal(t, "Review risk assessment", checklist[1].Description)
}

func assertFormNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, apperrors.EntityForm, notFound.Entity)
}
