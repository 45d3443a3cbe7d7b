package services

import (
	"ccaportal/models"
	"ccaportal/pkg/apperrors"
)

// Schema Model operations: pure functions over a form template. Nothing in
// this file mutates a template; submission processing only ever reads it.

// ResolveItem returns the definition of an item by id.
func ResolveItem(form *models.Form, itemID uint) (models.Item, bool) {
	for _, item := range form.Items {
		if item.ItemID == itemID {
			return item, true
		}
	}
	return models.Item{}, false
}

// ExpandVisibleItems computes the set of item ids that may legally receive
// data in the current round: every item visible by default, plus items
// unlocked by a conditionalItems entry whose triggering option was selected
// among the supplied answers.
func ExpandVisibleItems(form *models.Form, answers []models.ItemData) map[uint]struct{} {
	visible := make(map[uint]struct{})
	for _, item := range form.Items {
		if item.DefaultVisibility {
			visible[item.ItemID] = struct{}{}
		}
	}

	for _, answer := range answers {
		item, ok := ResolveItem(form, answer.ItemID)
		if !ok || len(item.ConditionalItems) == 0 {
			continue
		}
		selected, ok := optionIndex(answer.Data)
		if !ok {
			continue
		}
		for _, unlocked := range item.ConditionalItems[selected] {
			visible[unlocked] = struct{}{}
		}
	}
	return visible
}

// optionIndex coerces an answer value to an option index. JSON numbers
// arrive as float64; only integral values qualify.
func optionIndex(data any) (int, bool) {
	switch v := data.(type) {
	case int:
		return v, true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}

// ValidateTemplate enforces the schema integrity invariant: every id that
// appears in any order list or conditionalItems mapping must resolve to a
// defined entry, and every item variant must be well formed. Called by the
// form-authoring operations; a template that fails here is never stored.
func ValidateTemplate(form *models.Form) error {
	components := make(map[uint]struct{}, len(form.Components))
	for _, c := range form.Components {
		components[c.ComponentID] = struct{}{}
	}
	items := make(map[uint]struct{}, len(form.Items))
	for _, i := range form.Items {
		items[i.ItemID] = struct{}{}
	}

	for _, section := range form.Sections {
		for _, componentID := range section.ComponentsOrder {
			if _, ok := components[componentID]; !ok {
				return apperrors.NewValidation("section %d references undefined component %d", section.SectionID, componentID)
			}
		}
	}
	for _, component := range form.Components {
		for _, itemID := range component.ItemsOrder {
			if _, ok := items[itemID]; !ok {
				return apperrors.NewValidation("component %d references undefined item %d", component.ComponentID, itemID)
			}
		}
	}

	for _, item := range form.Items {
		if !item.Type.Valid() {
			return apperrors.NewValidation("item %d has unknown type %q", item.ItemID, string(item.Type))
		}
		switch item.Type {
		case models.ItemTextbox:
			if item.MaxLength <= 0 {
				return apperrors.NewValidation("textbox item %d must declare a positive maxLength", item.ItemID)
			}
		case models.ItemDropdown, models.ItemRadio:
			if len(item.Options) == 0 {
				return apperrors.NewValidation("item %d must declare at least one option", item.ItemID)
			}
		case models.ItemFile:
			if len(item.AllowedExtensions()) == 0 {
				return apperrors.NewValidation("file item %d must declare allowed file types", item.ItemID)
			}
		}
		for option, unlocked := range item.ConditionalItems {
			if option < 0 || option >= len(item.Options) {
				return apperrors.NewValidation("item %d has a conditional entry for nonexistent option %d", item.ItemID, option)
			}
			for _, unlockedID := range unlocked {
				if _, ok := items[unlockedID]; !ok {
					return apperrors.NewValidation("item %d conditionally references undefined item %d", item.ItemID, unlockedID)
				}
			}
		}
	}
	return nil
}

// RemoveItems deletes items from a template and scrubs every reference:
// component order lists and all conditionalItems mappings. Used by the
// cascading deletes of form authoring.
func RemoveItems(form *models.Form, itemIDs []uint) {
	doomed := make(map[uint]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		doomed[id] = struct{}{}
	}

	kept := form.Items[:0]
	for _, item := range form.Items {
		if _, gone := doomed[item.ItemID]; gone {
			continue
		}
		for option, unlocked := range item.ConditionalItems {
			filtered := unlocked[:0]
			for _, id := range unlocked {
				if _, gone := doomed[id]; !gone {
					filtered = append(filtered, id)
				}
			}
			item.ConditionalItems[option] = filtered
		}
		kept = append(kept, item)
	}
	form.Items = kept

	for ci := range form.Components {
		order := form.Components[ci].ItemsOrder[:0]
		for _, id := range form.Components[ci].ItemsOrder {
			if _, gone := doomed[id]; !gone {
				order = append(order, id)
			}
		}
		form.Components[ci].ItemsOrder = order
	}
}

// RemoveComponents deletes components, cascading into their items.
func RemoveComponents(form *models.Form, componentIDs []uint) {
	doomed := make(map[uint]struct{}, len(componentIDs))
	for _, id := range componentIDs {
		doomed[id] = struct{}{}
	}

	var orphanedItems []uint
	kept := form.Components[:0]
	for _, component := range form.Components {
		if _, gone := doomed[component.ComponentID]; gone {
			orphanedItems = append(orphanedItems, component.ItemsOrder...)
			continue
		}
		kept = append(kept, component)
	}
	form.Components = kept

	for si := range form.Sections {
		order := form.Sections[si].ComponentsOrder[:0]
		for _, id := range form.Sections[si].ComponentsOrder {
			if _, gone := doomed[id]; !gone {
				order = append(order, id)
			}
		}
		form.Sections[si].ComponentsOrder = order
	}

	if len(orphanedItems) > 0 {
		RemoveItems(form, orphanedItems)
	}
}

// RemoveSections deletes sections, cascading into components and items.
func RemoveSections(form *models.Form, sectionIDs []uint) {
	doomed := make(map[uint]struct{}, len(sectionIDs))
	for _, id := range sectionIDs {
		doomed[id] = struct{}{}
	}

	var orphanedComponents []uint
	kept := form.Sections[:0]
	for _, section := range form.Sections {
		if _, gone := doomed[section.SectionID]; gone {
			orphanedComponents = append(orphanedComponents, section.ComponentsOrder...)
			continue
		}
		kept = append(kept, section)
	}
	form.Sections = kept

	if len(orphanedComponents) > 0 {
		RemoveComponents(form, orphanedComponents)
	}
}
