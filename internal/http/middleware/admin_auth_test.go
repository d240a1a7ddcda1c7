package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func adminToken(t *testing.T, secret string, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "dietitian",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAdminJWTRejections(t *testing.T) {
	cases := []struct {
		name   string
		secret string
		header string
	}{
		{"no secret configured", "", ""},
		{"missing header", "secret", ""},
		{"not a bearer token", "secret", "Basic abc"},
		{"wrong signing secret", "secret", ""},
		{"expired token", "secret", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			header := tc.header
			switch tc.name {
			case "wrong signing secret":
				header = "Bearer " + adminToken(t, "other-secret", time.Hour)
			case "expired token":
				header = "Bearer " + adminToken(t, tc.secret, -time.Minute)
			}

			mw := AdminJWT(tc.secret)
			req := httptest.NewRequest(http.MethodPost, "/api/appointments", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()

			mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler should not be reached")
			})).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
			}
		})
	}
}

func TestAdminJWTValidTokenPassesClaims(t *testing.T) {
	mw := AdminJWT("secret")
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "secret", 5*time.Minute))
	rec := httptest.NewRecorder()

	called := false
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		claims, ok := AdminClaimsFromContext(r.Context())
		if !ok {
			t.Fatal("expected admin claims in context")
		}
		if claims.Subject != "dietitian" {
			t.Errorf("expected subject dietitian, got %q", claims.Subject)
		}
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	if !called {
		t.Fatal("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}
