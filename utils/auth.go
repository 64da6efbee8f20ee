package utils

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// ErrInvalidToken is returned by Verify for any token that fails parsing,
// signature verification or expiry checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents the JWT claims embedded in a driver access token.
type Claims struct {
	DriverID string `json:"driver_id"`
	Email    string `json:"email"`
	Status   string `json:"status"`
	jwt.StandardClaims
}

// JWTManager issues and verifies driver access tokens. The secret is injected
// at construction instead of living in a package-level variable.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTManager creates a JWTManager signing HS256 tokens valid for ttl.
func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl}
}

// Issue generates a signed access token for a driver.
func (m *JWTManager) Issue(driverID, email, status string) (string, error) {
	now := time.Now()
	claims := &Claims{
		DriverID: driverID,
		Email:    email,
		Status:   status,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token string, returning its claims.
func (m *JWTManager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.DriverID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
