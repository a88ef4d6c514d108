package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ali-azimo/house-aj/internal/models"
)

// ErrNoCredential indicates the request carried no token at all.
var ErrNoCredential = errors.New("no credential provided")

// ErrInvalidCredential indicates a token that failed verification or expired.
var ErrInvalidCredential = errors.New("invalid or expired credential")

// Identity is the authenticated subject attached to a request.
type Identity struct {
	ID   int64
	Role models.Role
}

// Claims is the signed payload: the registered claims plus the account role.
// The subject holds the account id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed JWTs for authenticated accounts.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a manager with the provided secret, issuer, and lifetime.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Generate issues a signed JWT embedding the account id and role.
func (t *TokenManager) Generate(id int64, role models.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   strconv.FormatInt(id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks the token's signature and validity window and returns the
// embedded identity. Any failure collapses to ErrInvalidCredential; callers
// never see parser internals.
func (t *TokenManager) Verify(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrNoCredential
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(t.issuer))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Identity{}, ErrInvalidCredential
	}
	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return Identity{}, ErrInvalidCredential
	}
	return Identity{ID: id, Role: role}, nil
}
