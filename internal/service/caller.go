package service

import (
	"context"

	"unboxx/internal/model"
	"unboxx/internal/repository"

	"github.com/google/uuid"
)

// Caller is the authenticated user a request runs as.
type Caller struct {
	AuthID uuid.UUID
	Email  string
	Role   string
}

func (c Caller) IsAdmin() bool { return c.Role == model.RoleAdmin }

// companyScope returns the company name a caller's reads are limited to.
// Admins get "" (everything). ok is false for a client with no linked
// company, who can see nothing.
func companyScope(ctx context.Context, profiles repository.ProfileRepository, c Caller) (customer string, ok bool, err error) {
	if c.IsAdmin() {
		return "", true, nil
	}
	p, err := profiles.FindByAuthID(ctx, c.AuthID)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, err
	}
	if p.Customer == nil {
		return "", false, nil
	}
	return p.Customer.Name, true, nil
}
