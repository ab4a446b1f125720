package service

import (
	"errors"
	"sort"
	"strings"

	"unboxx/internal/dto"
	"unboxx/internal/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrNoCompany          = errors.New("no company linked to this profile")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("permission denied")
	ErrConflict           = errors.New("already exists")
)

// ValidationError lists fields rejected by service-level checks that struct
// tags cannot express (e.g. values that are blank after trimming).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

// classify maps storage errors onto the service sentinels.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case repository.IsNotFound(err):
		return ErrNotFound
	case repository.IsPermissionDenied(err):
		return ErrForbidden
	case repository.IsUniqueViolation(err):
		return ErrConflict
	default:
		return err
	}
}

// normalizePage clamps paging to 1..n and 1..100 rows.
func normalizePage(p *dto.Page) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// nullable trims s and returns nil when nothing is left.
func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
