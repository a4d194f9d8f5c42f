package stubserver

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/benben6515/metc/internal/core/domain"
	"github.com/benben6515/metc/internal/stubserver/repository"
)

// AdminEmail and AdminPassword identify the fixed bootstrap account every
// seeded stub contains, so a fresh instance is immediately usable.
const (
	AdminEmail    = "admin@metc.io"
	AdminPassword = "admin123"
)

var seedRoles = []domain.RoleLevel{domain.RoleEditor, domain.RoleUser, domain.RoleClient}

// Seed populates the repository with the bootstrap admin plus count
// generated accounts. Generated accounts all share the password
// "password123" so they are usable in manual testing.
func Seed(ctx context.Context, repo *repository.Memory, count int, log zerolog.Logger) error {
	adminHash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if _, err := repo.Create(ctx, domain.AccountForm{
		Name:      "Administrator",
		Email:     AdminEmail,
		Password:  AdminPassword,
		RoleLevel: domain.RoleAdmin,
	}, string(adminHash)); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}

	faker := gofakeit.New(0)
	for i := 0; i < count; i++ {
		form := domain.AccountForm{
			Name:      faker.Name(),
			Email:     faker.Email(),
			Password:  "password123",
			RoleLevel: seedRoles[i%len(seedRoles)],
		}
		account, err := repo.Create(ctx, form, string(hash))
		if err != nil {
			// Faked emails can collide; skip and move on.
			log.Warn().Err(err).Str("email", form.Email).Msg("skipping seed account")
			continue
		}
		// Mix in some disabled accounts so the active filter has work to do.
		if i%4 == 3 {
			off := domain.StatusOff
			if _, err := repo.Update(ctx, account.ID, domain.AccountUpdate{Status: &off}, ""); err != nil {
				return fmt.Errorf("seed accounts: %w", err)
			}
		}
	}

	log.Info().Int("count", repo.Count()).Msg("repository seeded")
	return nil
}
