package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignJWT(Claims{Sub: "ops", Role: RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Sub != "ops" || !claims.IsAdmin() {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.Exp-claims.Iat != int64(time.Hour/time.Second) {
		t.Fatalf("expected 1h ttl, got %d", claims.Exp-claims.Iat)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := SignJWT(Claims{Sub: "ops"}, 0)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	t.Setenv("JWT_SECRET", "other-secret")
	if _, err := VerifyJWT(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
	if _, err := VerifyJWT(strings.Repeat("a", 10)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for garbage, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	past := time.Now().Add(-time.Hour).Unix()
	token, err := SignJWT(Claims{Sub: "ops", Iat: past - 10, Exp: past}, 0)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_, err = VerifyJWT(token)
	if !errors.Is(err, ErrExpiredToken) || !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token error, got %v", err)
	}
}

func TestSecretRequiredInProduction(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENV", "production")
	if _, err := SignJWT(Claims{Sub: "ops"}, 0); err == nil {
		t.Fatalf("expected missing secret error")
	}
}
