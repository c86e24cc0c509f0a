package db_models

import "gorm.io/datatypes"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is keyed by email; username is a secondary unique key. Both
// uniqueness rules live in the schema so concurrent inserts cannot race.
type Account struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FirstName    string
	LastName     string
	IsStaff      bool   `gorm:"not null;default:false"`
	IsSuperuser  bool   `gorm:"not null;default:false"`
	IsActive     bool   `gorm:"not null;default:true"`
	Role         string `gorm:"type:varchar(20);not null;default:'user'"`

	Age          *int
	Sex          *string `gorm:"size:10"`
	Country      *string `gorm:"size:100"`
	SkinType     datatypes.JSONSlice[string]
	SkinConcerns datatypes.JSONSlice[string]

	Appointments []Appointment   `gorm:"constraint:OnDelete:CASCADE"`
	Images       []UploadedImage `gorm:"constraint:OnDelete:CASCADE"`
}

// IsPrivileged reports whether the account may obtain a session via login.
func (a *Account) IsPrivileged() bool {
	return a.IsStaff || a.IsSuperuser
}
