package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminRole is the only role the local gate accepts.
const AdminRole = "admin"

// Claims are the three token claims the client decodes. The signature is
// never verified here: the gate is advisory, the backend enforces for real.
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// DecodeClaims extracts sub, role and exp from the token without verifying
// the signature. Malformed tokens return an error.
func DecodeClaims(token string) (Claims, error) {
	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		return Claims{}, err
	}
	c := Claims{Subject: tc.Subject, Role: tc.Role}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	return c, nil
}

// IsAdminToken reports whether token currently grants admin access: claims
// decode, role is admin, and exp (Unix seconds) is still in the future.
// Any decode failure yields false, never an error.
func IsAdminToken(token string) bool {
	return isAdminTokenAt(token, time.Now())
}

func isAdminTokenAt(token string, now time.Time) bool {
	c, err := DecodeClaims(token)
	if err != nil {
		return false
	}
	return c.Role == AdminRole && c.ExpiresAt.Unix() > now.Unix()
}
