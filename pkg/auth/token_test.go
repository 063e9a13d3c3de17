package auth

import (
	"testing"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "storefront-test",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseSessionToken(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	now := time.Now()

	signed, err := MintSessionToken(cfg, now, 1, "jane")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims, err := ParseSessionToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != 1 || claims.Username != "jane" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
}

func TestMintSessionTokenRequiresUsername(t *testing.T) {
	t.Parallel()

	if _, err := MintSessionToken(testJWTConfig(), time.Now(), 1, "  "); err == nil {
		t.Fatal("expected blank username to be rejected")
	}
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signed, err := MintSessionToken(testJWTConfig(), time.Now(), 1, "jane")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	other := testJWTConfig()
	other.Secret = "different"
	if _, err := ParseSessionToken(other, signed); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}
