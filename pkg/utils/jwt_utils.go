package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtSecretKey signs and verifies JWT tokens. Loaded from the JWT_SECRET
// environment variable at startup via InitJWT.
var jwtSecretKey []byte

const (
	AccessTokenTTL  = 15 * time.Minute   // Access token lives for 15 minutes
	RefreshTokenTTL = 7 * 24 * time.Hour // Refresh token lives for 7 days

	jwtIssuer = "workforce-backend"
)

// InitJWT sets the signing key used by all token helpers.
func InitJWT(secret string) {
	jwtSecretKey = []byte(secret)
}

// Claims defines the JWT claims structure
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"` // STAFF or ADMIN, for authorization
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a new JWT access token for a given user ID, email, and role.
func GenerateAccessToken(userID int64, email string, role string) (string, error) {
	expirationTime := time.Now().Add(AccessTokenTTL)
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    jwtIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

// GenerateRefreshToken creates a new JWT refresh token for a given user ID.
// Refresh tokens carry fewer claims and a longer expiry.
func GenerateRefreshToken(userID int64) (string, error) {
	expirationTime := time.Now().Add(RefreshTokenTTL)
	claims := &Claims{
		UserID: userID, // Only UserID needed for refresh token to identify user
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    jwtIssuer + "-refresh",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token string.
// It returns the claims if the token is valid, otherwise an error.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
