package auth

// Admin is the single administrator record, auto-provisioned on first run.
type Admin struct {
	ID           int
	Email        string
	PasswordHash []byte
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminResponse struct {
	Email string `json:"email"`
}
