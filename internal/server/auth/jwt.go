// Package auth implements the stateless token service: issuing and
// verifying the signed, time-limited tokens that gate the data routes.
package auth

import (
	"errors"
	"time"

	"todoapi/internal/common"

	"github.com/golang-jwt/jwt/v5"
)

// Claims embeds the registered claim set and adds the authenticated
// username, the only identity attribute this service carries.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// GenerateToken mints an HS256 token embedding username, valid from now
// until now plus validityDuration. Nothing is persisted; validity is
// determined purely by signature and expiry at verification time.
func GenerateToken(username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUsernameFromToken verifies tokenString against secretKey and returns
// the embedded username. Expired tokens yield common.ErrTokenExpired;
// a bad signature, a malformed token, or an unexpected signing method
// yields common.ErrInvalidToken.
func GetUsernameFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.Username, nil
}
