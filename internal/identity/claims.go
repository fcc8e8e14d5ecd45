package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the identity fields shown by whoami.
type Claims struct {
	Subject   string
	Email     string
	Issuer    string
	ExpiresAt time.Time
}

// ParseClaims decodes a JWT without verifying its signature.
// The backends verify the token; this is for display only.
func ParseClaims(raw string) (Claims, error) {
	tok, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("decoding token: %w", err)
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("decoding token: unexpected claims type %T", tok.Claims)
	}

	var c Claims
	c.Subject, _ = mc.GetSubject()
	c.Issuer, _ = mc.GetIssuer()
	c.Email, _ = mc["email"].(string)
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}
