package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// Identity is what the client can tell about the signed-in user from the
// credential itself. The signature is not verified; the server does that.
type Identity struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// Label is a short display name for the identity.
func (i Identity) Label() string {
	if i.Email != "" {
		return i.Email
	}
	return i.Subject
}

func ParseIdentity(credential string) (Identity, error) {
	token, _, err := new(jwt.Parser).ParseUnverified(credential, jwt.MapClaims{})
	if err != nil {
		return Identity{}, fmt.Errorf("invalid JWT format")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fmt.Errorf("invalid JWT claims")
	}

	var id Identity
	switch sub := claims["sub"].(type) {
	case string:
		id.Subject = sub
	case float64:
		id.Subject = fmt.Sprintf("%.0f", sub)
	}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if exp, ok := claims["exp"].(float64); ok {
		id.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	return id, nil
}
