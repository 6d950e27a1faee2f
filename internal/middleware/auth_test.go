// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sweetcorner/backend/internal/core"
)

type stubVerifier struct {
	claims map[string]*SessionClaims
	err    error
}

func (s *stubVerifier) VerifySessionToken(
	ctx context.Context,
	token string,
) (*SessionClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	claims, ok := s.claims[token]
	if !ok {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}
	return claims, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func claimsEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%s|%s|%s",
			GetUserID(r.Context()),
			GetUserEmail(r.Context()),
			GetUserRole(r.Context()),
		)
	})
}

func newStub() *stubVerifier {
	return &stubVerifier{claims: map[string]*SessionClaims{
		"good-standard": {UserID: "u1", Email: "u1@example.com", Role: "standard"},
		"good-admin":    {UserID: "u2", Email: "u2@example.com", Role: RoleAdmin},
	}}
}

func TestAuthenticator_MissingToken(t *testing.T) {
	handler := Authenticator(newStub(), "uid")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	var resp core.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Message != "access denied, no token provided" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestAuthenticator_InvalidToken(t *testing.T) {
	handler := Authenticator(newStub(), "uid")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	var resp core.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != "TOKEN_INVALID" {
		t.Errorf("expected TOKEN_INVALID code, got %q", resp.Code)
	}
}

func TestAuthenticator_ExpiredToken(t *testing.T) {
	verifier := &stubVerifier{
		err: fmt.Errorf("verify token: %w", core.ErrTokenExpired),
	}
	handler := Authenticator(verifier, "uid")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	var resp core.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != "TOKEN_EXPIRED" {
		t.Errorf("expected TOKEN_EXPIRED code, got %q", resp.Code)
	}
}

func TestAuthenticator_BearerTokenPopulatesContext(t *testing.T) {
	handler := Authenticator(newStub(), "uid")(claimsEcho())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-standard")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != "u1|u1@example.com|standard" {
		t.Errorf("unexpected context values %q", got)
	}
}

func TestAuthenticator_CookiePreferredOverHeader(t *testing.T) {
	handler := Authenticator(newStub(), "uid")(claimsEcho())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "uid", Value: "good-admin"})
	req.Header.Set("Authorization", "Bearer good-standard")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Body.String(); got != "u2|u2@example.com|admin" {
		t.Errorf("expected cookie identity to win, got %q", got)
	}
}

func TestRequireAdmin_ForbidsStandardRole(t *testing.T) {
	handler := Authenticator(newStub(), "uid")(RequireAdmin(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-standard")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	var resp core.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Message != "admin not authorised" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestRequireAdmin_AllowsAdminRole(t *testing.T) {
	handler := Authenticator(newStub(), "uid")(RequireAdmin(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-admin")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireAdmin_NoAuthContext(t *testing.T) {
	handler := RequireAdmin(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestExtractToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if tok := ExtractToken(req, "uid"); tok != "" {
		t.Errorf("expected empty token, got %q", tok)
	}

	req.Header.Set("Authorization", "Basic abc")
	if tok := ExtractToken(req, "uid"); tok != "" {
		t.Errorf("expected empty token for non-bearer scheme, got %q", tok)
	}

	req.Header.Set("Authorization", "Bearer  abc123 ")
	if tok := ExtractToken(req, "uid"); tok != "abc123" {
		t.Errorf("expected trimmed bearer token, got %q", tok)
	}

	req.AddCookie(&http.Cookie{Name: "uid", Value: "cookie-token"})
	if tok := ExtractToken(req, "uid"); tok != "cookie-token" {
		t.Errorf("expected cookie token, got %q", tok)
	}
}
