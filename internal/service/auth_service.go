package service

import (
	"context"
	"errors"
	"time"

	"unboxx/internal/config"
	"unboxx/internal/dto"
	"unboxx/internal/model"
	"unboxx/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Token kinds carried in the "typ" claim.
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	Me(ctx context.Context, caller Caller) (*dto.SessionUser, error)
}

type authService struct {
	users    repository.AuthUserRepository
	profiles repository.ProfileRepository
	cfg      *config.Config
}

func NewAuthService(users repository.AuthUserRepository, profiles repository.ProfileRepository, cfg *config.Config) AuthService {
	return &authService{users: users, profiles: profiles, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil || !user.Active {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := ParseToken(refreshToken, s.cfg.JWTSecret)
	if err != nil || claims.Type != TokenRefresh {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.FindByID(ctx, claims.AuthID)
	if err != nil || !user.Active {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, user)
}

func (s *authService) Me(ctx context.Context, caller Caller) (*dto.SessionUser, error) {
	user, err := s.users.FindByID(ctx, caller.AuthID)
	if err != nil {
		return nil, classify(err)
	}
	session, err := s.session(ctx, user)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *authService) issue(ctx context.Context, user *model.AuthUser) (*dto.LoginResponse, error) {
	session, err := s.session(ctx, user)
	if err != nil {
		return nil, err
	}
	access, err := s.generateToken(session, TokenAccess, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(session, TokenRefresh, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         session,
	}, nil
}

// session resolves the role from the profile; users without one are clients.
func (s *authService) session(ctx context.Context, user *model.AuthUser) (dto.SessionUser, error) {
	out := dto.SessionUser{AuthID: user.ID.String(), Email: user.Email, Role: model.RoleClient}
	p, err := s.profiles.FindByAuthID(ctx, user.ID)
	switch {
	case err == nil:
		id := p.ID.String()
		out.ProfileID = &id
		out.Role = p.Role
	case !repository.IsNotFound(err):
		return out, err
	}
	return out, nil
}

func (s *authService) generateToken(u dto.SessionUser, typ string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": u.AuthID,
		"email":   u.Email,
		"role":    u.Role,
		"typ":     typ,
		"exp":     now.Add(duration).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// TokenClaims is the decoded form of a portal JWT.
type TokenClaims struct {
	AuthID uuid.UUID
	Email  string
	Role   string
	Type   string
}

var errMalformedToken = errors.New("malformed token")

// ParseToken verifies an HS256 token and extracts its claims.
func ParseToken(raw, secret string) (*TokenClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errMalformedToken
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errMalformedToken
	}
	uid, _ := mc["user_id"].(string)
	authID, err := uuid.Parse(uid)
	if err != nil {
		return nil, errMalformedToken
	}
	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)
	typ, _ := mc["typ"].(string)
	return &TokenClaims{AuthID: authID, Email: email, Role: role, Type: typ}, nil
}
