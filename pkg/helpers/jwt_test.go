package helpers

import (
	"testing"
	"time"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	m := &JWTManager{Secret: []byte("super-secret"), TTL: time.Hour}
	userID := "507f1f77bcf86cd799439011"

	tok, err := m.Generate(userID)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	claims, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", claims.UserID, userID)
	}
	if claims.Access != AccessAuth {
		t.Fatalf("access mismatch: got %q want %q", claims.Access, AccessAuth)
	}
}

func TestGenerate_DistinctTokens(t *testing.T) {
	t.Parallel()

	m := &JWTManager{Secret: []byte("super-secret"), TTL: time.Hour}
	a, err := m.Generate("u1")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	b, err := m.Generate("u1")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct tokens for successive generations")
	}
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	m := &JWTManager{Secret: []byte("secret"), TTL: -1 * time.Second}
	tok, err := m.Generate("u1")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if _, err := m.Parse(tok); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	m := &JWTManager{Secret: []byte("right-secret"), TTL: time.Hour}
	tok, err := m.Generate("u2")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	other := &JWTManager{Secret: []byte("wrong-secret"), TTL: time.Hour}
	if _, err := other.Parse(tok); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestParse_MalformedString(t *testing.T) {
	t.Parallel()

	m := &JWTManager{Secret: []byte("k"), TTL: time.Hour}
	if _, err := m.Parse("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
