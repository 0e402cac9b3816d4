package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the authenticated identity carried by an access token.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Roles  []Role
}

func (c Claims) HasAnyRole(roles ...Role) bool {
	for _, want := range roles {
		for _, have := range c.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// TokenIssuer signs and validates HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Generate creates a signed token for the user carrying id, email, and roles.
func (t *TokenIssuer) Generate(u User) (string, error) {
	roles := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		roles[i] = string(r)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.ID.String(),
		"email": u.Email,
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   now.Add(t.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate parses a token string and returns the identity it carries.
func (t *TokenIssuer) Validate(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	email, _ := mapClaims["email"].(string)

	var roles []Role
	if raw, ok := mapClaims["roles"].([]interface{}); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok && ValidRole(Role(s)) {
				roles = append(roles, Role(s))
			}
		}
	}

	return Claims{
		UserID: userID,
		Email:  email,
		Roles:  roles,
	}, nil
}
