// Package auth issues and verifies the bearer tokens that gate the proxy.
// A token carries the capabilities of its subject; routes demand one.
package auth

import (
	"errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Capability names a permission a route can demand.
type Capability string

// Capabilities understood by the proxy.
const (
	CapEditPosts     Capability = "edit_posts"
	CapManageOptions Capability = "manage_options"
)

// ParseCapability returns the capability with the given name.
func ParseCapability(name string) (Capability, bool) {
	switch Capability(name) {
	case CapEditPosts, CapManageOptions:
		return Capability(name), true
	default:
		return "", false
	}
}

// Config contains token settings.
type Config struct {
	Secret string `env:"AUTH_JWT_SECRET"`
	Issuer string `env:"AUTH_JWT_ISSUER" envDefault:"quill"`
}

// Claims is the token payload.
type Claims struct {
	Capabilities []Capability `json:"caps"`
	jwt.RegisteredClaims
}

// Can reports whether the claims grant the capability.
func (c *Claims) Can(capability Capability) bool {
	return slices.Contains(c.Capabilities, capability)
}

// Manager signs and parses HS256 tokens.
type Manager struct {
	secret []byte
	issuer string
}

// NewManager creates a token manager.
func NewManager(config Config) (*Manager, error) {
	if config.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}

	return &Manager{
		secret: []byte(config.Secret),
		issuer: config.Issuer,
	}, nil
}

// Issue signs a token for subject. A zero ttl produces a token without expiry.
func (m *Manager) Issue(subject string, capabilities []Capability, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Capabilities: capabilities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies the token signature, issuer and expiry.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
