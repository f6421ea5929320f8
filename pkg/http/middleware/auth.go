package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// Role names carried in access-token claims.
const (
	RoleAdmin      = "admin"
	RoleResearcher = "researcher"
	RoleInvestor   = "investor"
	RoleViewer     = "viewer"
)

// rolePrefixes maps protected path prefixes to the roles allowed in. Paths
// outside every prefix are public.
var rolePrefixes = []struct {
	prefix string
	roles  []string
}{
	{"/admin", []string{RoleAdmin}},
	{"/research", []string{RoleAdmin, RoleResearcher}},
	{"/trading", []string{RoleAdmin, RoleResearcher}},
	{"/investor", []string{RoleAdmin, RoleInvestor}},
	{"/dashboard", []string{RoleAdmin, RoleResearcher, RoleInvestor, RoleViewer}},
}

// AccessClaims are the JWT claims QuantLab issues for workspace access.
type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RoleGate returns middleware enforcing role-gated path prefixes against a
// Bearer token signed with the given HMAC secret.
func RoleGate(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles := allowedRoles(c.Request().URL.Path)
			if roles == nil {
				return next(c)
			}

			token := bearerToken(c.Request())
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := ParseAccessToken(token, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			for _, r := range roles {
				if claims.Role == r {
					c.Set("role", claims.Role)
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}

// ParseAccessToken validates the token signature and returns its claims.
func ParseAccessToken(token, secret string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("token invalid")
	}
	return claims, nil
}

func allowedRoles(path string) []string {
	for _, rp := range rolePrefixes {
		if strings.HasPrefix(path, rp.prefix) {
			return rp.roles
		}
	}
	return nil
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get(echo.HeaderAuthorization)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
