package dto

type SaveCompanyRequest struct {
	Name      string `json:"name"       validate:"required,min=1,max=200"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	Surname   string `json:"surname"    validate:"required,min=1,max=100"`
	Email     string `json:"email"      validate:"omitempty,email"`
	Phone     string `json:"phone"      validate:"max=40"`
}

type CustomerResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	FirstName string  `json:"first_name"`
	Surname   string  `json:"surname"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// SaveCompanyResponse reports whether the save created a new company.
type SaveCompanyResponse struct {
	Company CustomerResponse `json:"company"`
	Created bool             `json:"created"`
}
