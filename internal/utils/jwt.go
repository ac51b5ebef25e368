package utils // package utils holds token and password helpers used by the auth handler

import (
	"errors"
	"time" // expiry arithmetic

	"github.com/golang-jwt/jwt/v5" // HS256 signing and parsing
)

// AccessToken is a signed operator JWT together with its expiry.  Operators
// send it as "Authorization: Bearer <token>" on dashboard calls.
type AccessToken struct {
	Token string    `json:"token"`   // serialized JWT
	Exp   time.Time `json:"expires"` // UTC expiration time
}

// Claims is the payload carried by an operator token.  Subject holds the
// operator id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ErrInvalidToken is returned by ParseAccessToken for any token that fails
// signature, algorithm, expiry or shape checks.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken signs an HS256 JWT for operatorID with the given role,
// valid for ttlMin minutes from now.
func NewAccessToken(secret, operatorID, role string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operatorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken validates raw and returns its claims.  Only HMAC-signed
// tokens are accepted, and the subject must be present.
func ParseAccessToken(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok { // reject "none" and RSA swaps
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
