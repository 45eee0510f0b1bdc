package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

func TestAccessTokenRoundTrip(t *testing.T) {
    const secret = "test-secret"
    tok, err := NewAccessToken(secret, "6f1f2a1e-0000-4000-8000-000000000001", 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    if !tok.Exp.After(time.Now().UTC()) {
        t.Fatal("expiry must be in the future")
    }

    parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    })
    if err != nil || !parsed.Valid {
        t.Fatalf("parse: %v valid=%v", err, parsed.Valid)
    }
    claims := parsed.Claims.(jwt.MapClaims)
    if claims["sub"] != "6f1f2a1e-0000-4000-8000-000000000001" {
        t.Fatalf("sub = %v", claims["sub"])
    }
    if _, hasRole := claims["role"]; hasRole {
        t.Fatal("token must not carry a role claim")
    }
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
    tok, err := NewAccessToken("right", "user", 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
        return []byte("wrong"), nil
    })
    if err == nil && parsed.Valid {
        t.Fatal("token verified with the wrong secret")
    }
}

func TestRefreshTokenHashing(t *testing.T) {
    rt, err := NewRefreshToken(30)
    if err != nil {
        t.Fatalf("NewRefreshToken: %v", err)
    }
    if len(rt.Raw) != 96 {
        t.Fatalf("raw length = %d, want 96", len(rt.Raw))
    }
    if HashRefreshRaw(rt.Raw) != HashRefreshRaw(rt.Raw) {
        t.Fatal("hash must be deterministic")
    }
    other, _ := NewRefreshToken(30)
    if rt.Raw == other.Raw {
        t.Fatal("two tokens must differ")
    }
}
