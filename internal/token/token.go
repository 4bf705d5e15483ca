// Package token issues and verifies the two credential kinds of the API:
// short-lived signed JWT access tokens and long-lived opaque refresh values.
// Persistence of refresh tokens is the repo layer's responsibility — this
// package only generates and checks credentials.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/techup/travelshare/backend/internal/domain"
)

// accessClaims are the JWT claims carried by an access token: the standard
// registered set plus the user's email. The subject is the user ID.
type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer creates and verifies HMAC-SHA256 signed access tokens.
// All fields are read-only after construction; an Issuer is safe for
// concurrent use.
type Issuer struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
}

// NewIssuer constructs an Issuer. secret signs tokens with HS256, issuer is
// embedded as the "iss" claim, and accessTTL bounds token validity.
func NewIssuer(secret, issuer string, accessTTL time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), issuer: issuer, accessTTL: accessTTL}
}

// AccessToken produces a signed, stateless token for id. Validity is
// determined purely by signature and expiry at verification time — no
// database lookup is ever involved.
func (i *Issuer) AccessToken(id domain.Identity) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   id.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("token.Issuer.AccessToken: sign: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry, and issuer of tokenString and returns the
// identity it encodes. Any failure — expired, malformed, wrong signature or
// issuer — is normalised to domain.ErrUnauthenticated so callers never need
// to inspect low-level JWT errors.
func (i *Issuer) Verify(tokenString string) (domain.Identity, error) {
	var claims accessClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return i.secret, nil
	}, jwt.WithIssuer(i.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	return domain.Identity{UserID: userID, Email: claims.Email}, nil
}

// NewRefreshValue returns a fresh opaque refresh token value: 32 bytes from
// crypto/rand, base64url encoded. The value carries no claims — its only
// required properties are unguessability and uniqueness.
func NewRefreshValue() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("token.NewRefreshValue: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
