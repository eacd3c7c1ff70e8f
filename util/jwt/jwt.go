package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issue signs an HS256 token for a staff session.
func Issue(secret string, staffID int64, role string, ttlHours int) (string, error) {
	claims := jwt.MapClaims{
		"sub":  staffID,
		"role": role,
		"exp":  time.Now().Add(time.Duration(ttlHours) * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseAuth validates an Authorization header value ("Bearer <token>" or the
// bare token) and returns the staff id and role claims.
func ParseAuth(authHeader, secret string) (int64, string, error) {
	tokenStr := strings.TrimSpace(authHeader)
	if strings.HasPrefix(strings.ToLower(tokenStr), "bearer ") {
		tokenStr = strings.TrimSpace(tokenStr[7:])
	}
	if tokenStr == "" {
		return 0, "", errors.New("missing token")
	}

	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return 0, "", err
	}
	if !tok.Valid {
		return 0, "", errors.New("invalid token")
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid claims")
	}
	sub, ok := mc["sub"].(float64)
	if !ok {
		return 0, "", errors.New("missing sub claim")
	}
	role, _ := mc["role"].(string)
	return int64(sub), role, nil
}
