package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned for every verification failure: bad
// signature, malformed payload, or expiry. Callers never learn which,
// so a rejected token reveals nothing about why it was rejected.
var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	// UserID travels in the "id" claim alongside the registered claims.
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies stateless identity tokens. The secret
// is provided once at construction and is the only process-wide auth
// state.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer constructs a TokenIssuer with a 7-day token lifetime.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    defaultTokenTTL,
	}
}

// Issue produces a signed token embedding the user id and expiry.
func (t *TokenIssuer) Issue(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	})
	return token.SignedString(t.secret)
}

// Verify validates the signature and expiry and returns the embedded
// user id. Every failure mode yields ErrInvalidToken.
func (t *TokenIssuer) Verify(tokenString string) (int64, error) {
	parsed := claims{}
	token, err := jwt.ParseWithClaims(tokenString, &parsed, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	if parsed.UserID < 1 {
		return 0, ErrInvalidToken
	}
	return parsed.UserID, nil
}
