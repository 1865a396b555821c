package auth

import (
	"errors"
	"time"

	"github.com/Wildboar1/IERP-Website-sub000/src/portal/types"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the only verification failure callers ever see; the
// reason (missing, malformed, expired, bad signature) is never surfaced.
var ErrInvalidToken = errors.New("auth: invalid session token")

func IssueToken(secret []byte, ident types.Identity, ttl time.Duration) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   ident.DiscordID,
		"name":  ident.Name,
		"admin": ident.Admin,
		"exp":   time.Now().Add(ttl).Unix(),
	})
	return tok.SignedString(secret)
}

func ParseToken(secret []byte, raw string) (types.Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return types.Identity{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return types.Identity{}, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return types.Identity{}, ErrInvalidToken
	}
	name, _ := claims["name"].(string)
	admin, _ := claims["admin"].(bool)
	return types.Identity{DiscordID: sub, Name: name, Admin: admin}, nil
}
