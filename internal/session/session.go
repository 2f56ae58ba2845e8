package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tylum123/gendercare-admin/internal/domain"
	"github.com/tylum123/gendercare-admin/internal/workflow"
)

// Session is the explicit identity context of a signed-in operator.
// It is created at login and removed at logout.
type Session struct {
	ID        string      `json:"id"`
	Token     string      `json:"token"`
	UserID    string      `json:"user_id"`
	Role      domain.Role `json:"role"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	ExpiresAt time.Time   `json:"expires_at"`
	CreatedAt time.Time   `json:"created_at"`
}

// Expired checks if the session has expired at now
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Actor returns the workflow identity of the session owner.
func (s *Session) Actor() workflow.Actor {
	return workflow.Actor{UserID: s.UserID, Role: s.Role}
}

// Claim names differ between identity providers; the first present wins.
var (
	userIDClaims = []string{"user_id", "sub", "nameid", "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"}
	roleClaims   = []string{"role", "platform_role", "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"}
	nameClaims   = []string{"name", "unique_name", "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"}
	emailClaims  = []string{"email", "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"}
)

// FromToken builds a session from the claims of a bearer token.
// With an empty secret the signature is not checked; the claims are then
// used for display and client-side gating only, the remote API stays the
// authority on every call.
func FromToken(token, secret string) (*Session, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", domain.ErrNoSession)
	}

	claims := jwt.MapClaims{}
	var err error
	if secret != "" {
		_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
	} else {
		_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	}
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, fmt.Errorf("%w: invalid token: %w", domain.ErrNoSession, err)
	}

	s := &Session{
		Token:  token,
		UserID: firstClaim(claims, userIDClaims),
		Name:   firstClaim(claims, nameClaims),
		Email:  firstClaim(claims, emailClaims),
	}
	if s.UserID == "" {
		return nil, fmt.Errorf("%w: token has no user id", domain.ErrNoSession)
	}

	if role, ok := domain.ParseRole(firstClaim(claims, roleClaims)); ok {
		s.Role = role
	} else {
		s.Role = domain.RoleCustomer
	}

	exp, err := claims.GetExpirationTime()
	if err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}
	return s, nil
}

func firstClaim(claims jwt.MapClaims, names []string) string {
	for _, name := range names {
		switch v := claims[name].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		case []interface{}:
			// multi-role tokens: take the first entry
			if len(v) > 0 {
				if s, ok := v[0].(string); ok {
					return s
				}
			}
		}
	}
	return ""
}
