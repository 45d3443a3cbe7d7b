package services

import (
	"testing"

	"ccaportal/models"
	"ccaportal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testForm() *models.Form {
	return &models.Form{
		Title: "Event Proposal",
		Sections: []models.Section{
			{SectionID: 1, Title: "General", ComponentsOrder: []uint{1, 2}},
		},
		Components: []models.Component{
			{ComponentID: 1, Title: "Details", ItemsOrder: []uint{1, 2, 3}},
			{ComponentID: 2, Title: "Extras", ItemsOrder: []uint{4, 5}},
		},
		Items: []models.Item{
			{ItemID: 1, Type: models.ItemTextbox, Label: "Event name", Required: true, DefaultVisibility: true, MaxLength: 50},
			{ItemID: 2, Type: models.ItemRadio, Label: "Venue booked?", Required: true, DefaultVisibility: true,
				Options:          []string{"Yes", "No"},
				ConditionalItems: map[int][]uint{0: {4}},
			},
			{ItemID: 3, Type: models.ItemTextLabel, Label: "Fill in everything", DefaultVisibility: true},
			{ItemID: 4, Type: models.ItemTextbox, Label: "Venue name", Required: true, DefaultVisibility: false, MaxLength: 30},
			{ItemID: 5, Type: models.ItemCheckbox, Label: "External guests", DefaultVisibility: true},
		},
	}
}

func TestResolveItem(t *testing.T) {
	form := testForm()

	item, ok := ResolveItem(form, 2)
	require.True(t, ok)
	assert.Equal(t, models.ItemRadio, item.Type)

	_, ok = ResolveItem(form, 99)
	assert.False(t, ok)
}

func TestExpandVisibleItems_DefaultOnly(t *testing.T) {
	form := testForm()

	visible := ExpandVisibleItems(form, nil)

	assert.Contains(t, visible, uint(1))
	assert.Contains(t, visible, uint(2))
	assert.Contains(t, visible, uint(5))
	assert.NotContains(t, visible, uint(4), "conditional item must stay hidden without its trigger")
}

func TestExpandVisibleItems_ConditionalUnlock(t *testing.T) {
	form := testForm()

	visible := ExpandVisibleItems(form, []models.ItemData{{ItemID: 2, Data: 0}})
	assert.Contains(t, visible, uint(4))

	// JSON decoding delivers numbers as float64.
	visible = ExpandVisibleItems(form, []models.ItemData{{ItemID: 2, Data: float64(0)}})
	assert.Contains(t, visible, uint(4))

	// The other option does not unlock anything.
	visible = ExpandVisibleItems(form, []models.ItemData{{ItemID: 2, Data: 1}})
	assert.NotContains(t, visible, uint(4))
}

func TestValidateTemplate_Valid(t *testing.T) {
	assert.NoError(t, ValidateTemplate(testForm()))
}

func TestValidateTemplate_DanglingReferences(t *testing.T) {
	form := testForm()
	form.Sections[0].ComponentsOrder = append(form.Sections[0].ComponentsOrder, 42)
	assertValidationError(t, ValidateTemplate(form))

	form = testForm()
	form.Components[0].ItemsOrder = append(form.Components[0].ItemsOrder, 42)
	assertValidationError(t, ValidateTemplate(form))

	form = testForm()
	form.Items[1].ConditionalItems = map[int][]uint{0: {42}}
	assertValidationError(t, ValidateTemplate(form))
}

func TestValidateTemplate_VariantRules(t *testing.T) {
	form := testForm()
	form.Items[0].MaxLength = 0
	assertValidationError(t, ValidateTemplate(form))

	form = testForm()
	form.Items[1].Options = nil
	assertValidationError(t, ValidateTemplate(form))

	form = testForm()
	form.Items[4].Type = "slider"
	assertValidationError(t, ValidateTemplate(form))

	// Conditional entry pointing at an option index the item does not have.
	form = testForm()
	form.Items[1].ConditionalItems = map[int][]uint{5: {4}}
	assertValidationError(t, ValidateTemplate(form))
}

func TestRemoveItems_ScrubsAllReferences(t *testing.T) {
	form := testForm()

	RemoveItems(form, []uint{4})

	_, ok := ResolveItem(form, 4)
	assert.False(t, ok)
	assert.NotContains(t, form.Components[1].ItemsOrder, uint(4))
	assert.Empty(t, form.Items[1].ConditionalItems[0])

	// The template must still satisfy the integrity check afterwards.
	assert.NoError(t, ValidateTemplate(form))
}

func TestRemoveComponents_CascadesIntoItems(t *testing.T) {
	form := testForm()

	RemoveComponents(form, []uint{2})

	assert.Len(t, form.Components, 1)
	assert.NotContains(t, form.Sections[0].ComponentsOrder, uint(2))
	for _, gone := range []uint{4, 5} {
		_, ok := ResolveItem(form, gone)
		assert.False(t, ok, "item %d should be gone with its component", gone)
	}
	assert.NoError(t, ValidateTemplate(form))
}

func TestRemoveSections_CascadesEverything(t *testing.T) {
	form := testForm()

	RemoveSections(form, []uint{1})

	assert.Empty(t, form.Sections)
	assert.Empty(t, form.Components)
	assert.Empty(t, form.Items)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var validation *apperrors.ValidationError
	assert.ErrorAs(t, err, &validation)
}
