// Package authtoken verifies identity tokens issued by the external
// auth provider. The provider signs HS256 tokens carrying the user's
// uid and display fields; this service only verifies, it never issues
// provider tokens itself.
package authtoken

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/skillora/skillora/internal/session"
)

// Verifier validates auth provider identity tokens.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier with the shared signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify checks the token signature and expiry and extracts the
// identity claims.
func (v *Verifier) Verify(tokenStr string) (session.Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return session.Identity{}, fmt.Errorf("invalid identity token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return session.Identity{}, errors.New("invalid identity token")
	}

	uid, _ := claims["sub"].(string)
	if uid == "" {
		return session.Identity{}, errors.New("identity token has no subject")
	}

	identity := session.Identity{UID: uid}
	identity.DisplayName, _ = claims["name"].(string)
	identity.Email, _ = claims["email"].(string)
	identity.PhotoURL, _ = claims["picture"].(string)

	return identity, nil
}
