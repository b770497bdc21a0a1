package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMissing = errors.New("token is missing")
	ErrTokenExpired = errors.New("token is expired")
)

// BearerToken достаёт токен из заголовка Authorization.
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrTokenMissing
	}

	return strings.TrimSpace(token), nil
}

// CheckExpiry parses the token without verifying its signature and rejects it
// when the exp claim is in the past. Signature checks belong to the identity API.
func CheckExpiry(tokenString string, now time.Time) error {
	const op = "jwt.CheckExpiry"

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if exp != nil && !exp.After(now) {
		return fmt.Errorf("%s: %w", op, ErrTokenExpired)
	}

	return nil
}

// Subject returns the sub claim, empty when the token carries none.
func Subject(tokenString string) string {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return ""
	}
	sub, _ := token.Claims.GetSubject()
	return sub
}
