package response_models

import (
	"aurora/internal/models/db_models"
)

// AccountPublic is the projection returned next to freshly issued credentials.
type AccountPublic struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AuthResponse struct {
	Access  string        `json:"access"`
	Refresh string        `json:"refresh"`
	IsAdmin bool          `json:"is_admin"`
	User    AccountPublic `json:"user"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}

type AccountResponse struct {
	ID                string   `json:"id"`
	Email             string   `json:"email"`
	Username          string   `json:"username"`
	FirstName         string   `json:"first_name"`
	LastName          string   `json:"last_name"`
	Role              string   `json:"role"`
	IsStaff           bool     `json:"is_staff"`
	IsSuperuser       bool     `json:"is_superuser"`
	IsActive          bool     `json:"is_active"`
	Age               *int     `json:"age"`
	Sex               *string  `json:"sex"`
	Country           *string  `json:"country"`
	SkinType          []string `json:"skin_type"`
	SkinConcerns      []string `json:"skin_concerns"`
	LastSkinCondition string   `json:"last_skin_condition,omitempty"`
}

type EnsureAdminResponse struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	IsActive    bool   `json:"is_active"`
}

func NewAccountPublic(a *db_models.Account) AccountPublic {
	return AccountPublic{
		ID:        a.ID.String(),
		Email:     a.Email,
		Username:  a.Username,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}

func NewAccountResponse(a *db_models.Account) AccountResponse {
	skinType := []string(a.SkinType)
	if skinType == nil {
		skinType = []string{}
	}
	skinConcerns := []string(a.SkinConcerns)
	if skinConcerns == nil {
		skinConcerns = []string{}
	}

	return AccountResponse{
		ID:           a.ID.String(),
		Email:        a.Email,
		Username:     a.Username,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Role:         a.Role,
		IsStaff:      a.IsStaff,
		IsSuperuser:  a.IsSuperuser,
		IsActive:     a.IsActive,
		Age:          a.Age,
		Sex:          a.Sex,
		Country:      a.Country,
		SkinType:     skinType,
		SkinConcerns: skinConcerns,
	}
}
