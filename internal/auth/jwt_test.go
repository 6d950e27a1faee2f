// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"testing"
	"time"

	"github.com/sweetcorner/backend/internal/config"
	"github.com/sweetcorner/backend/internal/core"
)

func testJWTManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	m, err := NewJWTManagerFromKey(key, config.JWTConfig{
		AccessTokenExpire: expire,
		Issuer:            "sweetcorner",
		Audience:          "sweetcorner-api",
	})
	if err != nil {
		t.Fatalf("jwt manager: %v", err)
	}
	return m
}

func TestSessionToken_RoundTrip(t *testing.T) {
	m := testJWTManager(t, time.Hour)

	token, err := m.CreateSessionToken(SessionTokenClaims{
		UserID: "u1",
		Email:  "u1@example.com",
		Role:   "standard",
	})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	claims, err := m.VerifySessionToken(context.Background(), token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}

	if claims.UserID != "u1" {
		t.Errorf("expected user id u1, got %q", claims.UserID)
	}
	if claims.Email != "u1@example.com" {
		t.Errorf("expected email u1@example.com, got %q", claims.Email)
	}
	if claims.Role != "standard" {
		t.Errorf("expected role standard, got %q", claims.Role)
	}
}

func TestSessionToken_Expired(t *testing.T) {
	m := testJWTManager(t, -time.Minute)

	token, err := m.CreateSessionToken(SessionTokenClaims{
		UserID: "u1",
		Email:  "u1@example.com",
		Role:   "standard",
	})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	_, err = m.VerifySessionToken(context.Background(), token)
	if !errors.Is(err, core.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestSessionToken_Garbage(t *testing.T) {
	m := testJWTManager(t, time.Hour)

	_, err := m.VerifySessionToken(context.Background(), "not-a-token")
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestSessionToken_WrongKeyRejected(t *testing.T) {
	signer := testJWTManager(t, time.Hour)
	verifier := testJWTManager(t, time.Hour)

	token, err := signer.CreateSessionToken(SessionTokenClaims{
		UserID: "u1",
		Email:  "u1@example.com",
		Role:   "admin",
	})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	_, err = verifier.VerifySessionToken(context.Background(), token)
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
