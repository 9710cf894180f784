package utils

import (
	"testing"

	"github.com/gimbotech/certifier/internal/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Error("password stored in the clear")
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Error("wrong password accepted")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	user := &models.UserAuth{ID: "a1b2c3", Email: "ops@example.com", Role: "operator"}

	token, err := GenerateToken(user, "test-secret")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims["email"] != "ops@example.com" {
		t.Errorf("unexpected email claim: %v", claims["email"])
	}
	if claims["role"] != "operator" {
		t.Errorf("unexpected role claim: %v", claims["role"])
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	user := &models.UserAuth{ID: "a1b2c3", Email: "ops@example.com"}

	token, err := GenerateToken(user, "test-secret")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateToken(token, "other-secret"); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token", "test-secret"); err == nil {
		t.Error("garbage token was accepted")
	}
}
