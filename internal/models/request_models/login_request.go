package request_models

// Binding is deliberately loose here: the identity service owns validation
// so every failure comes back as the same field-scoped error map.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	Age          *int     `json:"age"`
	Sex          *string  `json:"sex"`
	Country      *string  `json:"country"`
	SkinType     []string `json:"skin_type"`
	SkinConcerns []string `json:"skin_concerns"`
}

type RefreshTokenRequest struct {
	Refresh string `json:"refresh"`
}

// UpdateProfileRequest is a partial update; nil fields are left untouched.
type UpdateProfileRequest struct {
	Username     *string   `json:"username"`
	FirstName    *string   `json:"first_name"`
	LastName     *string   `json:"last_name"`
	Password     *string   `json:"password"`
	Age          *int      `json:"age"`
	Sex          *string   `json:"sex"`
	Country      *string   `json:"country"`
	SkinType     *[]string `json:"skin_type"`
	SkinConcerns *[]string `json:"skin_concerns"`
}
