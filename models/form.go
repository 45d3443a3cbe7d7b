package models

import (
	"strings"

	"gorm.io/datatypes"
)

// ItemType tags the variant of a form item. Only the types listed here are
// legal; textlabel is display-only and never carries an answer.
type ItemType string

const (
	ItemTextbox   ItemType = "textbox"
	ItemTextLabel ItemType = "textlabel"
	ItemDropdown  ItemType = "dropdown"
	ItemRadio     ItemType = "radio"
	ItemCheckbox  ItemType = "checkbox"
	ItemFile      ItemType = "file"
)

// DataKind names the wire type an item variant accepts.
type DataKind string

const (
	DataString  DataKind = "string"
	DataNumber  DataKind = "number"
	DataBoolean DataKind = "boolean"
	DataNone    DataKind = "none"
)

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTextbox, ItemTextLabel, ItemDropdown, ItemRadio, ItemCheckbox, ItemFile:
		return true
	}
	return false
}

// DataKind returns the accepted answer type for the variant.
func (t ItemType) DataKind() DataKind {
	switch t {
	case ItemTextbox, ItemFile:
		return DataString
	case ItemDropdown, ItemRadio:
		return DataNumber
	case ItemCheckbox:
		return DataBoolean
	default:
		return DataNone
	}
}

// TakesInput reports whether the variant can receive submitted data.
func (t ItemType) TakesInput() bool { return t.DataKind() != DataNone }

// Item is one entry of a form template. Variant-specific fields are only
// meaningful for their variant: MaxLength for textbox, Options for
// dropdown/radio, FileTypes for file. ConditionalItems maps a selected
// option index to the item ids it unlocks.
type Item struct {
	ItemID            uint           `json:"itemId"`
	Type              ItemType       `json:"type"`
	Label             string         `json:"label"`
	Required          bool           `json:"required"`
	DefaultVisibility bool           `json:"defaultVisibility"`
	MaxLength         int            `json:"maxLength,omitempty"`
	Options           []string       `json:"options,omitempty"`
	FileTypes         string         `json:"fileTypes,omitempty"`
	ConditionalItems  map[int][]uint `json:"conditionalItems,omitempty"`
}

// AllowedExtensions splits the FileTypes declaration (".jpg, .png") into a
// normalized extension list.
func (i Item) AllowedExtensions() []string {
	if i.FileTypes == "" {
		return nil
	}
	parts := strings.Split(i.FileTypes, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, ".") {
			p = "." + p
		}
		exts = append(exts, p)
	}
	return exts
}

// Section owns an ordered list of component ids.
type Section struct {
	SectionID       uint   `json:"sectionId"`
	Title           string `json:"title"`
	ComponentsOrder []uint `json:"componentsOrder"`
}

// Component owns an ordered list of item ids.
type Component struct {
	ComponentID uint   `json:"componentId"`
	Title       string `json:"title"`
	ItemsOrder  []uint `json:"itemsOrder"`
}

// ChecklistItem is a per-section downstream task description.
type ChecklistItem struct {
	SectionID   uint   `json:"sectionId"`
	Description string `json:"description"`
}

// Form is a form template document: one row, with the ordered
// sections → components → items tree held in JSONB columns. Order lists are
// arrays because ordering drives rendering and checklist generation.
type Form struct {
	BaseModel
	Title          string                             `gorm:"type:varchar(255);not null" json:"title"`
	IsPublic       bool                               `gorm:"default:false" json:"isPublic"`
	CreatorID      uint                               `gorm:"index;not null" json:"creatorId"`
	Sections       datatypes.JSONSlice[Section]       `json:"sections"`
	Components     datatypes.JSONSlice[Component]     `json:"components"`
	Items          datatypes.JSONSlice[Item]          `json:"items"`
	ChecklistItems datatypes.JSONSlice[ChecklistItem] `json:"checklistItems"`
}

// FormID is the public identifier of the template. Identity is
// storage-assigned; there are no application-side counters.
func (f *Form) FormID() uint { return f.ID }
