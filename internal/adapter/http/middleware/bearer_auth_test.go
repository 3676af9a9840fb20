package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/api-sage/ledger-service/internal/domain"
)

type verifierStub struct {
	verifyFn func(ctx context.Context, token string) (string, error)
}

func (s verifierStub) VerifyAccessToken(ctx context.Context, token string) (string, error) {
	if s.verifyFn != nil {
		return s.verifyFn(ctx, token)
	}
	return "", domain.ErrInvalidToken
}

func TestBearerAuth_AllowsValidToken(t *testing.T) {
	mw := BearerAuth(verifierStub{
		verifyFn: func(_ context.Context, token string) (string, error) {
			if token != "good-token" {
				return "", domain.ErrInvalidToken
			}
			return "user-1", nil
		},
	})

	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if seenUserID != "user-1" {
		t.Fatalf("expected user-1 in context, got %q", seenUserID)
	}
}

func TestBearerAuth_RejectsInvalidToken(t *testing.T) {
	mw := BearerAuth(verifierStub{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestBearerAuth_RejectsMissingHeader(t *testing.T) {
	mw := BearerAuth(verifierStub{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestBearerAuth_RejectsBasicScheme(t *testing.T) {
	mw := BearerAuth(verifierStub{
		verifyFn: func(context.Context, string) (string, error) {
			return "user-1", nil
		},
	})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}
