package dto

// SaveProfileRequest is the full profile form (create or edit).
type SaveProfileRequest struct {
	FirstName string `json:"first_name" validate:"max=100"`
	Surname   string `json:"surname"    validate:"max=100"`
	Phone     string `json:"phone"      validate:"max=40"`
}

// UpdatePersonalRequest is the "Edit Personal Info" form. Blank values
// clear the stored field.
type UpdatePersonalRequest struct {
	FirstName string `json:"first_name" validate:"max=100"`
	Surname   string `json:"surname"    validate:"max=100"`
	Phone     string `json:"phone"      validate:"max=40"`
}

type ProfileResponse struct {
	ID         *string           `json:"id"`
	Auth       string            `json:"auth"`
	Email      string            `json:"email"`
	FirstName  *string           `json:"first_name"`
	Surname    *string           `json:"surname"`
	Phone      *string           `json:"phone"`
	Role       string            `json:"role"`
	CustomerID *string           `json:"customer_id"`
	Company    *CustomerResponse `json:"company"`
	// Exists is false when no row is stored yet and the fields are a template.
	Exists bool `json:"exists"`
}
