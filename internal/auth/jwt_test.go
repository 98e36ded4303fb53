package auth

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, expiration, err := NewAccessToken("secret", "issuer", "audience", time.Minute, "aluno@example.com")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := ParseToken("secret", "issuer", "audience", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if claims.Email != "aluno@example.com" {
		t.Fatalf("unexpected email claim: %s", claims.Email)
	}
	if claims.Label != TokenLabel {
		t.Fatalf("unexpected label claim: %s", claims.Label)
	}
	if claims.ID == "" {
		t.Fatalf("expected jti claim to be set")
	}
	if !claims.ExpiresAt.Time.Equal(expiration.Truncate(time.Second)) {
		t.Fatalf("expected expiration %s, got %s", expiration, claims.ExpiresAt.Time)
	}
}

func TestExpirationIsTTLAfterIssuance(t *testing.T) {
	before := time.Now().UTC()
	_, expiration, err := NewAccessToken("secret", "issuer", "audience", 10*time.Hour, "aluno@example.com")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	after := time.Now().UTC()

	if expiration.Before(before.Add(10*time.Hour)) || expiration.After(after.Add(10*time.Hour)) {
		t.Fatalf("expiration not 10h after issuance: %s", expiration)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewAccessToken("secret", "issuer", "audience", time.Minute, "aluno@example.com")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("other-secret", "issuer", "audience", token); err == nil {
		t.Fatalf("expected signature verification to fail")
	}
}

func TestParseRejectsWrongIssuerOrAudience(t *testing.T) {
	token, _, err := NewAccessToken("secret", "issuer", "audience", time.Minute, "aluno@example.com")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("secret", "other-issuer", "audience", token); err == nil {
		t.Fatalf("expected issuer validation to fail")
	}
	if _, err := ParseToken("secret", "issuer", "other-audience", token); err == nil {
		t.Fatalf("expected audience validation to fail")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, _, err := NewAccessToken("secret", "issuer", "audience", -time.Minute, "aluno@example.com")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("secret", "issuer", "audience", token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestTokensCarryUniqueIDs(t *testing.T) {
	first, _, err := NewAccessToken("secret", "issuer", "audience", time.Minute, "aluno@example.com")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	second, _, err := NewAccessToken("secret", "issuer", "audience", time.Minute, "aluno@example.com")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	firstClaims, err := ParseToken("secret", "issuer", "audience", first)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	secondClaims, err := ParseToken("secret", "issuer", "audience", second)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if firstClaims.ID == secondClaims.ID {
		t.Fatalf("expected distinct jti values")
	}
}
