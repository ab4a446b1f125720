// seeduser creates or updates a login identity and its profile.
// Usage: go run ./cmd/seeduser -email ops@unboxx.test -password secret -role admin
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"unboxx/internal/config"
	"unboxx/internal/infra"
	"unboxx/internal/model"
	"unboxx/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	email := flag.String("email", "admin@unboxx.test", "login email")
	password := flag.String("password", "", "login password (required)")
	role := flag.String("role", model.RoleAdmin, "profile role: admin or client")
	flag.Parse()

	if *password == "" || (*role != model.RoleAdmin && *role != model.RoleClient) {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL, cfg.RealtimeChannel)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt")
	}

	ctx := context.Background()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return seed(ctx, tx, *email, string(hash), *role)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Str("email", *email).Str("role", *role).Msg("user created/updated")
}

func seed(ctx context.Context, tx *gorm.DB, email, hash, role string) error {
	users := repository.NewAuthUserRepository(tx)
	profiles := repository.NewProfileRepository(tx)

	u, err := users.FindByEmail(ctx, email)
	switch {
	case repository.IsNotFound(err):
		u = &model.AuthUser{Email: email, PasswordHash: hash, Active: true}
		if err := users.Create(ctx, u); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		u.PasswordHash = hash
		u.Active = true
		if err := users.Update(ctx, u); err != nil {
			return err
		}
	}

	p, err := profiles.FindByAuthID(ctx, u.ID)
	switch {
	case repository.IsNotFound(err):
		return profiles.Create(ctx, &model.Profile{AuthID: u.ID, Email: email, Role: role})
	case err != nil:
		return err
	default:
		p.Role = role
		return profiles.Update(ctx, p)
	}
}
