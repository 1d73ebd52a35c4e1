// Package tokens decodes the backend's JWT credentials on the client side.
//
// The client never holds the signing key, so tokens are parsed without
// signature verification: the backend remains the authority on validity and
// the client only reads the identity claims and the expiry to decide when to
// refresh.
package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/coursehub/internal/client/models"
	"github.com/dmitrijs2005/coursehub/internal/common"
)

// Claims is the claim set the backend puts into access and refresh tokens.
type Claims struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	TeacherID int64  `json:"teacher_id,omitempty"`
	TokenType string `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// Decode parses token without verifying its signature and checks that the
// claims the client depends on are present: a positive user_id and exp.
// Every failure wraps common.ErrInvalidToken.
func Decode(token string) (*Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", common.ErrInvalidToken)
	}

	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", common.ErrInvalidToken)
	}
	if claims.UserID <= 0 {
		return nil, fmt.Errorf("%w: missing user_id claim", common.ErrInvalidToken)
	}
	return claims, nil
}

// Expiry returns the exp claim of c.
func (c *Claims) Expiry() time.Time {
	return c.ExpiresAt.Time
}

// Identity projects the claims onto the user identity shown by the client.
func (c *Claims) Identity() *models.Identity {
	return &models.Identity{
		UserID:    c.UserID,
		Username:  c.Username,
		Email:     c.Email,
		FullName:  c.FullName,
		TeacherID: c.TeacherID,
	}
}

// IdentityFromToken decodes token and returns its identity.
func IdentityFromToken(token string) (*models.Identity, error) {
	claims, err := Decode(token)
	if err != nil {
		return nil, err
	}
	return claims.Identity(), nil
}
