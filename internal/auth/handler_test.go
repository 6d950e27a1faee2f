// AngelaMos | 2026
// handler_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sweetcorner/backend/internal/config"
	"github.com/sweetcorner/backend/internal/middleware"
)

func newAuthRouter(t *testing.T) (chi.Router, *fakeAccounts) {
	t.Helper()

	accounts := newFakeAccounts()
	jwtManager := testJWTManager(t, time.Hour)
	svc := NewService(jwtManager, accounts)
	handler := NewHandler(svc, config.CookieConfig{
		Name:     "uid",
		SameSite: "lax",
	})

	router := chi.NewRouter()
	authenticator := middleware.Authenticator(jwtManager, "uid")
	router.Route("/api", func(r chi.Router) {
		handler.RegisterRoutes(r, authenticator)
	})

	return router, accounts
}

func postJSON(
	t *testing.T,
	router chi.Router,
	path, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(
		http.MethodPost, path, strings.NewReader(body),
	)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const registerBody = `{
	"name": "Test User",
	"email": "a@example.com",
	"contact": "1234567890",
	"address": "1 Candy Lane",
	"password": "correct horse battery"
}`

func TestRegisterEndpoint(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := postJSON(t, router, "/api/auth/register", registerBody)
	if w.Code != http.StatusOK {
		t.Fatalf("register: status %d, body %s", w.Code, w.Body)
	}

	var resp MessageResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Message != "Registered successfully!" {
		t.Errorf("unexpected message %q", resp.Message)
	}

	// duplicate email
	w = postJSON(t, router, "/api/auth/register", registerBody)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: status %d", w.Code)
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Message != "email already exists" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestRegisterEndpoint_ValidationFailure(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := postJSON(t, router, "/api/auth/register", `{
		"name": "X",
		"email": "not-an-email",
		"contact": "1",
		"address": "a",
		"password": "short"
	}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLoginEndpoint_SetsCookieAndReturnsToken(t *testing.T) {
	router, _ := newAuthRouter(t)
	postJSON(t, router, "/api/auth/register", registerBody)

	w := postJSON(t, router, "/api/auth/login", `{
		"email": "a@example.com",
		"password": "correct horse battery"
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", w.Code, w.Body)
	}

	var resp LoginResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Message != "Login successful!" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if resp.Token == "" {
		t.Error("expected token in response body")
	}

	cookies := w.Result().Cookies()
	var session *http.Cookie
	for _, c := range cookies {
		if c.Name == "uid" {
			session = c
		}
	}
	if session == nil {
		t.Fatal("expected uid cookie")
	}
	if session.Value != resp.Token {
		t.Error("cookie should carry the same token as the body")
	}
	if !session.HttpOnly {
		t.Error("session cookie must be http-only")
	}
	if session.MaxAge != int(time.Hour/time.Second) {
		t.Errorf("expected max-age %d, got %d",
			int(time.Hour/time.Second), session.MaxAge)
	}
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	router, _ := newAuthRouter(t)
	postJSON(t, router, "/api/auth/register", registerBody)

	w := postJSON(t, router, "/api/auth/login", `{
		"email": "a@example.com",
		"password": "totally wrong pass"
	}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp MessageResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Message != "Invalid email or password!" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestGetUserDataEndpoint(t *testing.T) {
	router, _ := newAuthRouter(t)
	postJSON(t, router, "/api/auth/register", registerBody)

	w := postJSON(t, router, "/api/auth/login", `{
		"email": "a@example.com",
		"password": "correct horse battery"
	}`)
	var login LoginResponse
	json.Unmarshal(w.Body.Bytes(), &login)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/getUserData", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("getUserData: status %d, body %s", w.Code, w.Body)
	}

	var resp UserDataResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.User.Email != "a@example.com" {
		t.Errorf("unexpected email %q", resp.User.Email)
	}
	if resp.User.IsAdmin {
		t.Error("fresh registration must not be admin")
	}
}

func TestGetUserDataEndpoint_NoToken(t *testing.T) {
	router, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/getUserData", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLogoutEndpoint_ClearsCookie(t *testing.T) {
	router, _ := newAuthRouter(t)
	postJSON(t, router, "/api/auth/register", registerBody)

	w := postJSON(t, router, "/api/auth/login", `{
		"email": "a@example.com",
		"password": "correct horse battery"
	}`)
	var login LoginResponse
	json.Unmarshal(w.Body.Bytes(), &login)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "uid", Value: login.Token})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("logout: status %d, body %s", w.Code, w.Body)
	}

	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "uid" {
			cleared = c
		}
	}
	if cleared == nil {
		t.Fatal("expected uid cookie in logout response")
	}
	if cleared.MaxAge >= 0 || cleared.Value != "" {
		t.Errorf("expected expired empty cookie, got %+v", cleared)
	}
}
