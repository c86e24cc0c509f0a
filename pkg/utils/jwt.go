package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims are bound to one account at issuance time. Nothing is stored
// server-side; a token is valid while its signature and expiry are.
type Claims struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	TokenType   string `json:"token_type"`
	jwt.RegisteredClaims
}

// Subject is the identity a token pair is minted for.
type Subject struct {
	ID          uuid.UUID
	Email       string
	Role        string
	IsStaff     bool
	IsSuperuser bool
}

type TokenPair struct {
	Access  string
	Refresh string
}

type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (t *TokenIssuer) IssuePair(sub Subject) (TokenPair, error) {
	access, err := t.sign(sub, TokenTypeAccess, t.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := t.sign(sub, TokenTypeRefresh, t.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// RefreshAccess mints a new access token carrying the claims of a valid
// refresh token.
func (t *TokenIssuer) RefreshAccess(refreshToken string) (string, error) {
	claims, err := t.Validate(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return "", ErrInvalidToken
	}

	return t.sign(Subject{
		ID:          id,
		Email:       claims.Email,
		Role:        claims.Role,
		IsStaff:     claims.IsStaff,
		IsSuperuser: claims.IsSuperuser,
	}, TokenTypeAccess, t.accessTTL)
}

func (t *TokenIssuer) Validate(tokenString string, tokenType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)

	if err != nil || !token.Valid {
		if err == nil {
			err = errors.New("token not valid")
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("%w: expected %s token, got %q", ErrInvalidToken, tokenType, claims.TokenType)
	}

	return claims, nil
}

func (t *TokenIssuer) sign(sub Subject, tokenType string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := &Claims{
		UserID:      sub.ID.String(),
		Email:       sub.Email,
		Role:        sub.Role,
		IsStaff:     sub.IsStaff,
		IsSuperuser: sub.IsSuperuser,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub.ID.String(),
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}
