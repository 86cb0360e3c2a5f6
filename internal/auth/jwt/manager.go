package jwtauth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mirellenails/salon-backend/internal/config"
)

type manager struct {
	jwtConfig config.JWT
}

func NewManager(jwtConfig config.JWT) *manager {
	return &manager{
		jwtConfig: jwtConfig,
	}
}

type customClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

func (m *manager) GenerateToken(email string) (string, error) {
	claims := customClaims{
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.jwtConfig.SessionTTL)),
		},
		email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(m.jwtConfig.Secret))
}

func (m *manager) GetSessionTTL() time.Duration {
	return m.jwtConfig.SessionTTL
}

func (m *manager) ParseToken(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &customClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(m.jwtConfig.Secret), nil
	})
	if err != nil || !token.Valid {
		return "", err
	}

	claims, ok := token.Claims.(*customClaims)
	if !ok {
		return "", err
	}

	return claims.Email, nil
}
