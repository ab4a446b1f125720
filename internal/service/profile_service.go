package service

import (
	"context"

	"unboxx/internal/dto"
	"unboxx/internal/model"
	"unboxx/internal/repository"
)

type ProfileService interface {
	// Get returns the stored profile, or a blank client template when the
	// user has not saved one yet.
	Get(ctx context.Context, caller Caller) (*dto.ProfileResponse, error)
	// Save creates the profile on first use and updates it afterwards.
	Save(ctx context.Context, caller Caller, req dto.SaveProfileRequest) (*dto.ProfileResponse, error)
	// UpdatePersonal edits name and phone on an existing profile. Blank
	// values are stored as NULL.
	UpdatePersonal(ctx context.Context, caller Caller, req dto.UpdatePersonalRequest) (*dto.ProfileResponse, error)
}

type profileService struct {
	repo repository.ProfileRepository
}

func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) Get(ctx context.Context, caller Caller) (*dto.ProfileResponse, error) {
	p, err := s.repo.FindByAuthID(ctx, caller.AuthID)
	if repository.IsNotFound(err) {
		return &dto.ProfileResponse{
			Auth:  caller.AuthID.String(),
			Email: caller.Email,
			Role:  model.RoleClient,
		}, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return toProfileResponse(p), nil
}

func (s *profileService) Save(ctx context.Context, caller Caller, req dto.SaveProfileRequest) (*dto.ProfileResponse, error) {
	p, err := s.repo.FindByAuthID(ctx, caller.AuthID)
	switch {
	case repository.IsNotFound(err):
		p = &model.Profile{
			AuthID:    caller.AuthID,
			Email:     caller.Email,
			FirstName: nullable(req.FirstName),
			Surname:   nullable(req.Surname),
			Phone:     nullable(req.Phone),
			Role:      model.RoleClient,
		}
		if err := s.repo.Create(ctx, p); err != nil {
			return nil, classify(err)
		}
		return toProfileResponse(p), nil
	case err != nil:
		return nil, classify(err)
	}

	p.FirstName = nullable(req.FirstName)
	p.Surname = nullable(req.Surname)
	p.Phone = nullable(req.Phone)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, classify(err)
	}
	return toProfileResponse(p), nil
}

func (s *profileService) UpdatePersonal(ctx context.Context, caller Caller, req dto.UpdatePersonalRequest) (*dto.ProfileResponse, error) {
	err := s.repo.UpdateFields(ctx, caller.AuthID, map[string]interface{}{
		"first_name": nullable(req.FirstName),
		"surname":    nullable(req.Surname),
		"phone":      nullable(req.Phone),
	})
	if err != nil {
		return nil, classify(err)
	}
	p, err := s.repo.FindByAuthID(ctx, caller.AuthID)
	if err != nil {
		return nil, classify(err)
	}
	return toProfileResponse(p), nil
}

func toProfileResponse(p *model.Profile) *dto.ProfileResponse {
	id := p.ID.String()
	resp := &dto.ProfileResponse{
		ID:        &id,
		Auth:      p.AuthID.String(),
		Email:     p.Email,
		FirstName: p.FirstName,
		Surname:   p.Surname,
		Phone:     p.Phone,
		Role:      p.Role,
		Exists:    true,
	}
	if p.CustomerID != nil {
		cid := p.CustomerID.String()
		resp.CustomerID = &cid
	}
	if p.Customer != nil {
		c := toCustomerResponse(p.Customer)
		resp.Company = &c
	}
	return resp
}
