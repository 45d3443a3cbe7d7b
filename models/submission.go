package models

import (
	"time"

	"gorm.io/datatypes"
)

// ItemData is one answered item. Data holds the sanitized answer: string
// for textbox, option index for dropdown/radio, bool for checkbox, stored
// file name for file items.
type ItemData struct {
	ItemID uint `json:"itemId"`
	Data   any  `json:"data"`
}

// SubmissionNote is one append-only annotation.
type SubmissionNote struct {
	Note             string    `json:"note"`
	TimestampCreated time.Time `json:"timestampCreated"`
}

// Submission is one society's response to one form, accumulated across
// resubmission rounds. It is a single-row document: answers and both note
// lists live in JSONB columns so every mutation is one row update. A
// submission is never deleted, its status reaches Completed instead.
type Submission struct {
	BaseModel
	FormID       uint                                `gorm:"index;not null" json:"formId"`
	SocietyID    uint                                `gorm:"index;not null" json:"societyId"`
	Status       SubmissionStatus                    `gorm:"type:varchar(32);index;not null" json:"status"`
	ItemsData    datatypes.JSONSlice[ItemData]       `json:"itemsData"`
	SocietyNotes datatypes.JSONSlice[SubmissionNote] `json:"societyNotes"`
	CCANotes     datatypes.JSONSlice[SubmissionNote] `json:"ccaNotes"`
}

// SubmissionID is the public identifier, assigned by storage at creation.
func (s *Submission) SubmissionID() uint { return s.ID }

// HasAnswer reports whether an item already carries a value. At most one
// ItemsData entry may exist per item id.
func (s *Submission) HasAnswer(itemID uint) bool {
	for _, d := range s.ItemsData {
		if d.ItemID == itemID {
			return true
		}
	}
	return false
}

// AnsweredItemIDs returns the ids of all answered items, in answer order.
func (s *Submission) AnsweredItemIDs() []uint {
	ids := make([]uint, 0, len(s.ItemsData))
	for _, d := range s.ItemsData {
		ids = append(ids, d.ItemID)
	}
	return ids
}

// NoteKind selects which note list an annotation goes to.
type NoteKind string

const (
	NoteSociety NoteKind = "society"
	NoteCCA     NoteKind = "cca"
)
