package auth

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/manapixels/stock-screener/internal/models"
)

// Properties over the credential primitives. Kept to a small run count
// because bcrypt hashing dominates the runtime.
func TestCredentialProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 10
	properties := gopter.NewProperties(parameters)

	svc := newTestService(t, nil)

	// bcrypt rejects inputs over 72 bytes, so stay under that.
	password := gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 && len(s) <= 64 })

	properties.Property("hash never equals plaintext and always verifies", prop.ForAll(
		func(pw string) bool {
			hash, err := svc.HashPassword(pw)
			if err != nil {
				return false
			}
			return hash != pw && svc.VerifyPassword(pw, hash)
		},
		password,
	))

	properties.Property("a different password never verifies", prop.ForAll(
		func(pw string) bool {
			hash, err := svc.HashPassword(pw)
			if err != nil {
				return false
			}
			return !svc.VerifyPassword(pw+"x", hash)
		},
		password,
	))

	properties.TestingRun(t)
}

func TestTokenRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	var current *models.User
	lookup := &mockUserLookup{
		getByEmail: func(ctx context.Context, email string) (*models.User, error) {
			if current != nil && email == current.Email {
				return current, nil
			}
			return nil, nil
		},
	}
	svc := newTestService(t, lookup)

	local := gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 && len(s) <= 30 })

	properties.Property("issued tokens resolve back to their subject", prop.ForAll(
		func(name string) bool {
			email := name + "@example.com"
			current = &models.User{ID: "id-" + name, Email: email, PasswordHash: "x", IsActive: true}

			token, err := svc.IssueToken(email)
			if err != nil {
				return false
			}
			got, err := svc.ResolveToken(context.Background(), token)
			return err == nil && got.Email == email
		},
		local,
	))

	properties.TestingRun(t)
}
