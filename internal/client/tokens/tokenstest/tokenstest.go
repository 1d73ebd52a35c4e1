// Package tokenstest mints signed tokens shaped like the backend's for use
// in tests.
package tokenstest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var signingKey = []byte("tokenstest-secret")

// Claims is the payload Mint signs.
type Claims struct {
	UserID    int64  `json:"user_id,omitempty"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	TeacherID int64  `json:"teacher_id,omitempty"`
	TokenType string `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

// Mint signs c with HS256.
func Mint(t testing.TB, c Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(signingKey)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return s
}

// Access mints an access token for userID expiring at exp.
func Access(t testing.TB, userID int64, email string, exp time.Time) string {
	t.Helper()
	return Mint(t, Claims{
		UserID:    userID,
		Username:  usernameOf(email),
		Email:     email,
		FullName:  "Test User",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
}

// Refresh mints a refresh token for userID expiring at exp.
func Refresh(t testing.TB, userID int64, exp time.Time) string {
	t.Helper()
	return Mint(t, Claims{
		UserID:    userID,
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
}

func usernameOf(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
