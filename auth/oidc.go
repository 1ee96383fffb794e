package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/peterdinis/Wheel-Verse/models"
	"gorm.io/gorm"
)

// TokenVerifier checks an externally-issued ID token and returns its
// claims. Satisfied by *oidc.IDTokenVerifier via oidcVerifier; tests plug
// in a fake.
type TokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*IDTokenClaims, error)
}

// IDTokenClaims is the subset of provider claims this service uses.
type IDTokenClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

type oidcVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDCVerifier discovers the issuer and builds a verifier bound to the
// client ID.
func NewOIDCVerifier(ctx context.Context, issuer, clientID string) (TokenVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("discover oidc issuer: %w", err)
	}
	return &oidcVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (v *oidcVerifier) Verify(ctx context.Context, rawIDToken string) (*IDTokenClaims, error) {
	idToken, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}
	var claims IDTokenClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("decode id token claims: %w", err)
	}
	return &claims, nil
}

// FederatedLogin finds or creates the user behind a verified ID token.
// Users created this way have no password hash and cannot use credential
// login.
func FederatedLogin(db *gorm.DB, claims *IDTokenClaims) (*Identity, error) {
	if claims.Email == "" {
		return nil, errors.New("id token has no email claim")
	}
	email := NormalizeEmail(claims.Email)

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Name:  claims.Name,
			Email: email,
			Image: claims.Picture,
		}
		if claims.EmailVerified {
			now := time.Now()
			user.EmailVerifiedAt = &now
		}
		if err := db.Create(&user).Error; err != nil {
			// Lost a race against a concurrent first login; the row
			// exists now.
			if ferr := db.Where("email = ?", email).First(&user).Error; ferr != nil {
				return nil, fmt.Errorf("create federated user: %w", err)
			}
		}
	case err != nil:
		return nil, fmt.Errorf("look up user: %w", err)
	}

	return &Identity{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}
