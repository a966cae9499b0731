package utils

import (
	"time" // Token lifetimes

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// Session tokens expire after a day
const tokenLifetime = 24 * time.Hour

// Claims carried by a session token. The role is captured at login time;
// the admin middleware gates on it without another database round trip.
type Claims struct {
	UserID               uint   `json:"user_id"` // Account ID
	Role                 string `json:"role"`    // Role claim: member or admin
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateJWT signs a session token for a user and their role
func GenerateJWT(userID uint, role, secret string) (string, error) {
	claims := Claims{
		UserID: userID, // Account ID
		Role:   role,   // Role at login time
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)), // Expiry
			IssuedAt:  jwt.NewNumericDate(time.Now()),                    // Issued now
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // HS256 signed token
	return token.SignedString([]byte(secret))
}

// ParseJWT validates a token string and returns its claims
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Shared HMAC secret
	})
	if err != nil {
		return nil, err // Malformed, expired or badly signed
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
