package models

// Society is a registered campus society account. The three email columns
// drive notification routing: the society address receives issue emails,
// the president/patron addresses receive review links.
type Society struct {
	BaseModel
	Name           string `gorm:"type:varchar(255);not null" json:"name"`
	NameInitials   string `gorm:"type:varchar(16);uniqueIndex;not null" json:"nameInitials"`
	Email          string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PresidentEmail string `gorm:"type:varchar(255);not null" json:"presidentEmail"`
	PatronEmail    string `gorm:"type:varchar(255);not null" json:"patronEmail"`
	PasswordHash   string `gorm:"type:varchar(255)" json:"-"`
	Active         bool   `gorm:"default:true" json:"active"`
}
