package authtoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestVerify(t *testing.T) {
	const secret = "test-secret"
	v := NewVerifier(secret)

	tokenStr := signToken(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     "user-1",
		"name":    "Ada",
		"email":   "ada@example.com",
		"picture": "https://example.com/ada.png",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	identity, err := v.Verify(tokenStr)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.UID != "user-1" {
		t.Errorf("UID = %q, want user-1", identity.UID)
	}
	if identity.DisplayName != "Ada" {
		t.Errorf("DisplayName = %q, want Ada", identity.DisplayName)
	}
	if identity.Email != "ada@example.com" {
		t.Errorf("Email = %q", identity.Email)
	}
	if identity.PhotoURL != "https://example.com/ada.png" {
		t.Errorf("PhotoURL = %q", identity.PhotoURL)
	}
}

func TestVerifyRejects(t *testing.T) {
	const secret = "test-secret"
	v := NewVerifier(secret)

	tests := []struct {
		name  string
		token string
	}{
		{
			name: "wrong secret",
			token: signToken(t, "other-secret", jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "user-1",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
		},
		{
			name: "expired",
			token: signToken(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "user-1",
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
		},
		{
			name: "missing subject",
			token: signToken(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
		},
		{
			name:  "garbage",
			token: "not.a.token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := v.Verify(tt.token); err == nil {
				t.Error("Verify accepted an invalid token")
			}
		})
	}
}
