package jwt

import (
	"errors"
	"time"

	"moviestore/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrEmptySecret      = errors.New("jwt: signing secret is empty")
)

// Claims carried by both access and refresh tokens. The subject is the
// account username, the id a random uuid.
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

type JWTProvider struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewJWTProvider(secret string, accessTTL, refreshTTL time.Duration) *JWTProvider {
	return &JWTProvider{
		Secret:     secret,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
}

func (p *JWTProvider) GenerateAccessToken(a auth.Account) (string, error) {
	return p.sign(a, tokenTypeAccess, p.AccessTTL)
}

func (p *JWTProvider) GenerateRefreshToken(a auth.Account) (string, error) {
	return p.sign(a, tokenTypeRefresh, p.RefreshTTL)
}

func (p *JWTProvider) ParseAccessToken(accessToken string) (auth.Account, error) {
	return p.parse(accessToken, tokenTypeAccess)
}

func (p *JWTProvider) ParseRefreshToken(refreshToken string) (auth.Account, error) {
	return p.parse(refreshToken, tokenTypeRefresh)
}

func (p *JWTProvider) sign(a auth.Account, tokenType string, ttl time.Duration) (string, error) {
	if p.Secret == "" {
		return "", ErrEmptySecret
	}

	now := time.Now()
	claims := Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   a.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(p.Secret))
}

func (p *JWTProvider) parse(raw, tokenType string) (auth.Account, error) {
	if p.Secret == "" {
		return auth.Account{}, ErrEmptySecret
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(p.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return auth.Account{}, ErrInvalidToken
	}

	if claims.Type != tokenType {
		return auth.Account{}, ErrInvalidTokenType
	}
	if claims.Subject == "" {
		return auth.Account{}, ErrInvalidToken
	}

	return auth.Account{Username: claims.Subject}, nil
}
