package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenLabel is a fixed claim stamped into every issued token.
const TokenLabel = "alunos-api-access"

type Claims struct {
	Email string `json:"email"`
	Label string `json:"label"`
	jwt.RegisteredClaims
}

// NewAccessToken signs an HS256 token for the given email. The jti claim is
// a fresh uuid per token so individual tokens can be traced. Returns the
// compact token string and its absolute expiration.
func NewAccessToken(secret, issuer, audience string, ttl time.Duration, email string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiration := now.Add(ttl)
	claims := Claims{
		Email: email,
		Label: TokenLabel,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiration),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiration, nil
}

// ParseToken verifies signature, lifetime, issuer and audience.
func ParseToken(secret, issuer, audience, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
