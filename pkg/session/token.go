package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered and private claims carried by a session token.
type Claims struct {
	Email         string `json:"email"`
	PlatformAdmin bool   `json:"platform_admin,omitempty"`
	jwt.RegisteredClaims
}

// ErrInvalidToken is returned for tokens that fail signature or claim checks.
var ErrInvalidToken = errors.New("invalid session token")

// Issuer signs session tokens with the keystore's active key.
type Issuer struct {
	keystore *KeyStore
	ttl      time.Duration
}

// NewIssuer creates an Issuer with the given token lifetime.
func NewIssuer(keystore *KeyStore, ttl time.Duration) *Issuer {
	return &Issuer{keystore: keystore, ttl: ttl}
}

// Issue returns a signed token for the given user.
func (i *Issuer) Issue(userID, email string, platformAdmin bool) (string, time.Time, error) {
	key, err := i.keystore.Active()
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	expiresAt := now.Add(i.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, Claims{
		Email:         email,
		PlatformAdmin: platformAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    "boardguru",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	token.Header["kid"] = key.Fingerprint

	signed, err := token.SignedString(key.Private)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verifier parses and validates session tokens against the keystore.
type Verifier struct {
	keystore *KeyStore
}

// NewVerifier creates a Verifier backed by the keystore.
func NewVerifier(keystore *KeyStore) *Verifier {
	return &Verifier{keystore: keystore}
}

// Verify parses a signed token and returns its claims.
func (v *Verifier) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token missing kid header")
		}
		key, err := v.keystore.ByFingerprint(kid)
		if err != nil {
			return nil, fmt.Errorf("unknown signing key: %w", err)
		}
		return &key.Private.PublicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithIssuer("boardguru"))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
