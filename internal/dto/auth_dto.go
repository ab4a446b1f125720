package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// SessionUser identifies the signed-in user. ProfileID is nil until the
// user completes their profile.
type SessionUser struct {
	AuthID    string  `json:"auth_id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	ProfileID *string `json:"profile_id"`
}

type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"` // seconds
	User         SessionUser `json:"user"`
}
