package auth

import (
	"strings"
	"testing"
	"time"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := NewJWT("my-secret-key")
	userID := "3f1c8a4e-0000-4000-8000-000000000001"

	token, err := j.Generate(userID)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if token == "" {
		t.Fatal("Generate() returned empty token")
	}

	claims, err := j.Validate(token)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("Validate() got UserID %q, want %q", claims.UserID, userID)
	}
	if got := time.Unix(claims.Exp, 0).Sub(time.Unix(claims.Iat, 0)); got != TokenTTL {
		t.Errorf("token lifetime = %v, want %v", got, TokenTTL)
	}

	// Tampered signature
	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + "invalid-signature"
	if _, err := j.Validate(tampered); err != ErrInvalidToken {
		t.Errorf("Validate() on tampered token: got %v, want ErrInvalidToken", err)
	}

	// Wrong segment count
	if _, err := j.Validate("invalid.token"); err != ErrInvalidToken {
		t.Errorf("Validate() on malformed token: got %v, want ErrInvalidToken", err)
	}

	// Garbage claims segment with a valid signature over it
	garbage := parts[0] + ".!!!not-base64!!!"
	forged := garbage + "." + j.sign(garbage)
	if _, err := j.Validate(forged); err != ErrInvalidToken {
		t.Errorf("Validate() on undecodable claims: got %v, want ErrInvalidToken", err)
	}
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := NewJWT("my-secret-key")

	token, err := j.generateAt("user-1", time.Now().Add(-2*TokenTTL), time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("generateAt() failed: %v", err)
	}

	if _, err := j.Validate(token); err != ErrInvalidToken {
		t.Errorf("Validate() on expired token: got %v, want ErrInvalidToken", err)
	}
}

func TestJWT_DifferentSecret(t *testing.T) {
	issuer := NewJWT("secret-a")
	verifier := NewJWT("secret-b")

	token, err := issuer.Generate("user-1")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if _, err := verifier.Validate(token); err != ErrInvalidToken {
		t.Errorf("Validate() with wrong secret: got %v, want ErrInvalidToken", err)
	}
}
