package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "areacheck"

// JWTStrategy wraps the session id into an HS256 signed JWT. The jti claim
// carries the session id, sub the user id.
type JWTStrategy struct {
	secret []byte
	now    func() time.Time
}

// NewJWTStrategy builds JWTStrategy signing with secret.
func NewJWTStrategy(secret string) *JWTStrategy {
	return &JWTStrategy{secret: []byte(secret), now: time.Now}
}

// IssueToken signs a token for the session.
func (s *JWTStrategy) IssueToken(sessionID string, userID int64, expiresAt time.Time) (string, error) {
	if sessionID == "" {
		return "", ErrInvalidToken
	}
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Subject:   strconv.FormatInt(userID, 10),
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken verifies signature, issuer and expiry and returns the session id.
func (s *JWTStrategy) ParseToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
