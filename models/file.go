package models

// File is an uploaded-file record. A record starts unowned; once an answer
// referencing it passes validation it is marked saved and linked to the
// owning form. A record already saved, or linked to a different form,
// cannot be consumed again.
type File struct {
	BaseModel
	Name         string `gorm:"type:varchar(255);not null" json:"name"` // canonical stored name, extension preserved
	OriginalName string `gorm:"type:varchar(255)" json:"originalName"`
	Saved        bool   `gorm:"default:false;index" json:"saved"`
	FormID       *uint  `gorm:"index" json:"formId"`
	UploaderID   uint   `gorm:"index" json:"uploaderId"`
}
