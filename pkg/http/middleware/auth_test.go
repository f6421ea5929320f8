package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func issueToken(t *testing.T, role string) string {
	t.Helper()
	claims := AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func gateRequest(t *testing.T, path, token string) int {
	t.Helper()
	e := echo.New()
	e.Use(RoleGate(testSecret))
	e.GET("/*", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestRoleGatePublicPathsPassThrough(t *testing.T) {
	if code := gateRequest(t, "/api/market", ""); code != http.StatusOK {
		t.Fatalf("public path status = %d, want 200", code)
	}
}

func TestRoleGateRejectsMissingToken(t *testing.T) {
	if code := gateRequest(t, "/dashboard/overview", ""); code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", code)
	}
}

func TestRoleGateRejectsBadSignature(t *testing.T) {
	claims := AccessClaims{Role: RoleAdmin}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if code := gateRequest(t, "/dashboard/overview", token); code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", code)
	}
}

func TestRoleGateMatrix(t *testing.T) {
	cases := []struct {
		role string
		path string
		want int
	}{
		{RoleAdmin, "/admin/users", http.StatusOK},
		{RoleAdmin, "/research/models", http.StatusOK},
		{RoleAdmin, "/trading/desk", http.StatusOK},
		{RoleAdmin, "/investor/reports", http.StatusOK},
		{RoleAdmin, "/dashboard/overview", http.StatusOK},
		{RoleResearcher, "/research/models", http.StatusOK},
		{RoleResearcher, "/trading/desk", http.StatusOK},
		{RoleResearcher, "/dashboard/overview", http.StatusOK},
		{RoleResearcher, "/admin/users", http.StatusForbidden},
		{RoleResearcher, "/investor/reports", http.StatusForbidden},
		{RoleInvestor, "/investor/reports", http.StatusOK},
		{RoleInvestor, "/dashboard/overview", http.StatusOK},
		{RoleInvestor, "/research/models", http.StatusForbidden},
		{RoleInvestor, "/trading/desk", http.StatusForbidden},
		{RoleViewer, "/dashboard/overview", http.StatusOK},
		{RoleViewer, "/research/models", http.StatusForbidden},
		{RoleViewer, "/investor/reports", http.StatusForbidden},
		{RoleViewer, "/admin/users", http.StatusForbidden},
	}

	for _, tc := range cases {
		token := issueToken(t, tc.role)
		if code := gateRequest(t, tc.path, token); code != tc.want {
			t.Errorf("%s on %s: status = %d, want %d", tc.role, tc.path, code, tc.want)
		}
	}
}

func TestParseAccessTokenRoundTrip(t *testing.T) {
	token := issueToken(t, RoleResearcher)
	claims, err := ParseAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Role != RoleResearcher {
		t.Fatalf("role = %q, want researcher", claims.Role)
	}
}
