//go:build !integration

package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"interpreter-booking/internal/infra/web"
)

func TestAuthManager_MintAndParse(t *testing.T) {
	auth := web.NewAuthManager("test-secret", false, "", time.Hour)

	rec := httptest.NewRecorder()
	token, err := auth.Mint(rec, "user-123", "translator")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	t.Run("bearer header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/potential", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		claims, err := auth.ParseFromRequest(r)
		if err != nil {
			t.Fatalf("expected a valid token, got %v", err)
		}
		if claims.Subject != "user-123" || claims.Role != "translator" {
			t.Errorf("expected user-123/translator, got %s/%s", claims.Subject, claims.Role)
		}
	})

	t.Run("session cookie", func(t *testing.T) {
		cookies := rec.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Name != "session" {
			t.Fatalf("expected one session cookie, got %v", cookies)
		}
		r := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/potential", nil)
		r.AddCookie(cookies[0])

		claims, err := auth.ParseFromRequest(r)
		if err != nil {
			t.Fatalf("expected a valid cookie token, got %v", err)
		}
		if claims.Subject != "user-123" {
			t.Errorf("expected user-123, got %s", claims.Subject)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if _, err := auth.ParseFromRequest(r); err == nil {
			t.Error("expected an error without credentials")
		}
	})

	t.Run("foreign secret is rejected", func(t *testing.T) {
		other := web.NewAuthManager("other-secret", false, "", time.Hour)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		if _, err := other.ParseFromRequest(r); err == nil {
			t.Error("expected a token signed with a different secret to fail")
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		shortLived := web.NewAuthManager("test-secret", false, "", -time.Minute)
		rec := httptest.NewRecorder()
		stale, err := shortLived.Mint(rec, "user-123", "customer")
		if err != nil {
			t.Fatalf("mint: %v", err)
		}
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+stale)
		if _, err := shortLived.ParseFromRequest(r); err == nil {
			t.Error("expected an expired token to fail")
		}
	})
}
