package service

import (
	"context"
	"strings"

	"unboxx/internal/dto"
	"unboxx/internal/model"
	"unboxx/internal/repository"
)

type CompanyService interface {
	Get(ctx context.Context, caller Caller) (*dto.CustomerResponse, error)
	// Save updates the caller's linked company, or creates one and links it
	// to the caller's profile in a single transaction.
	Save(ctx context.Context, caller Caller, req dto.SaveCompanyRequest) (*dto.SaveCompanyResponse, error)
}

type companyService struct {
	customers repository.CustomerRepository
	profiles  repository.ProfileRepository
}

func NewCompanyService(customers repository.CustomerRepository, profiles repository.ProfileRepository) CompanyService {
	return &companyService{customers: customers, profiles: profiles}
}

func (s *companyService) Get(ctx context.Context, caller Caller) (*dto.CustomerResponse, error) {
	p, err := s.profiles.FindByAuthID(ctx, caller.AuthID)
	if repository.IsNotFound(err) {
		return nil, ErrNoCompany
	}
	if err != nil {
		return nil, classify(err)
	}
	if p.Customer == nil {
		return nil, ErrNoCompany
	}
	resp := toCustomerResponse(p.Customer)
	return &resp, nil
}

func (s *companyService) Save(ctx context.Context, caller Caller, req dto.SaveCompanyRequest) (*dto.SaveCompanyResponse, error) {
	name := strings.TrimSpace(req.Name)
	first := strings.TrimSpace(req.FirstName)
	surname := strings.TrimSpace(req.Surname)

	fields := map[string]string{}
	if name == "" {
		fields["Name"] = "required"
	}
	if first == "" {
		fields["FirstName"] = "required"
	}
	if surname == "" {
		fields["Surname"] = "required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	p, err := s.profiles.FindByAuthID(ctx, caller.AuthID)
	switch {
	case repository.IsNotFound(err):
		// The company form can be the user's first save; CreateAndLink
		// inserts this client profile together with the company.
		p = &model.Profile{AuthID: caller.AuthID, Email: caller.Email, Role: model.RoleClient}
	case err != nil:
		return nil, classify(err)
	}

	if p.CustomerID != nil {
		c, err := s.customers.FindByID(ctx, *p.CustomerID)
		if err != nil {
			return nil, classify(err)
		}
		c.Name, c.FirstName, c.Surname = name, first, surname
		c.Email = nullable(req.Email)
		c.Phone = nullable(req.Phone)
		if err := s.customers.Update(ctx, c); err != nil {
			return nil, classify(err)
		}
		return &dto.SaveCompanyResponse{Company: toCustomerResponse(c), Created: false}, nil
	}

	c := &model.Customer{
		Name:      name,
		FirstName: first,
		Surname:   surname,
		Email:     nullable(req.Email),
		Phone:     nullable(req.Phone),
	}
	if err := s.customers.CreateAndLink(ctx, c, p); err != nil {
		return nil, classify(err)
	}
	return &dto.SaveCompanyResponse{Company: toCustomerResponse(c), Created: true}, nil
}

func toCustomerResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		FirstName: c.FirstName,
		Surname:   c.Surname,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}
