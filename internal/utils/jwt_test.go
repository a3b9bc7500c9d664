package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessToken(t *testing.T) {
	tok, err := NewAccessToken("test-secret", 42, "alice", 15)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("expected non-empty token")
	}
	if until := time.Until(tok.Exp); until < 14*time.Minute || until > 16*time.Minute {
		t.Errorf("expiry %v not ~15 minutes out", until)
	}

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (any, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			t.Fatalf("unexpected signing method %v", tk.Method)
		}
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"].(float64) != 42 {
		t.Errorf("wrong sub claim: %v", claims["sub"])
	}
	if claims["username"] != "alice" {
		t.Errorf("wrong username claim: %v", claims["username"])
	}
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("right-secret", 1, "bob", 5)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (any, error) {
		return []byte("wrong-secret"), nil
	})
	if err == nil && parsed.Valid {
		t.Error("expected verification with wrong secret to fail")
	}
}
