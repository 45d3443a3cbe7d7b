package models

import "gorm.io/datatypes"

// CCARole separates ordinary CCA staff from admins. Admins bypass the
// permission-flag stage of the access gate.
type CCARole string

const (
	CCARoleMember CCARole = "member"
	CCARoleAdmin  CCARole = "admin"
)

// CCAPermissions is the per-account permission flag set consulted by the
// access gate for non-admin CCA staff. The JSON keys are the flag names
// referenced by the route permission table.
type CCAPermissions struct {
	CCACrud          bool `json:"ccaCRUD"`
	SocietyCRUD      bool `json:"societyCRUD"`
	AccessFormMaker  bool `json:"accessFormMaker"`
	CreateReqTask    bool `json:"createReqTask"`
	CreateCustomTask bool `json:"createCustomTask"`
	ArchiveTask      bool `json:"archiveTask"`
	CreateTaskStatus bool `json:"createTaskStatus"`
	SetFormStatus    bool `json:"setFormStatus"`
	AddCCANote       bool `json:"addCCANote"`
}

// Has resolves a flag by its table name. Unknown flags are denied.
func (p CCAPermissions) Has(flag string) bool {
	switch flag {
	case "ccaCRUD":
		return p.CCACrud
	case "societyCRUD":
		return p.SocietyCRUD
	case "accessFormMaker":
		return p.AccessFormMaker
	case "createReqTask":
		return p.CreateReqTask
	case "createCustomTask":
		return p.CreateCustomTask
	case "archiveTask":
		return p.ArchiveTask
	case "createTaskStatus":
		return p.CreateTaskStatus
	case "setFormStatus":
		return p.SetFormStatus
	case "addCCANote":
		return p.AddCCANote
	}
	return false
}

// CCAAccount is a CCA staff account.
type CCAAccount struct {
	BaseModel
	Name         string                             `gorm:"type:varchar(255);not null" json:"name"`
	Email        string                             `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role         CCARole                            `gorm:"type:varchar(16);default:'member';not null" json:"role"`
	Permissions  datatypes.JSONType[CCAPermissions] `json:"permissions"`
	PasswordHash string                             `gorm:"type:varchar(255)" json:"-"`
	Active       bool                               `gorm:"default:true" json:"active"`
}
