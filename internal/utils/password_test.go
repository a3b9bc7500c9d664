package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret-pass1", 4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret-pass1" {
		t.Fatal("hash must not equal the plain password")
	}
	if !VerifyPassword(hash, "secret-pass1") {
		t.Error("expected correct password to verify")
	}
	if VerifyPassword(hash, "wrong-pass1") {
		t.Error("expected wrong password to fail verification")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if VerifyPassword("not-a-bcrypt-hash", "anything") {
		t.Error("expected malformed hash to fail verification")
	}
}
