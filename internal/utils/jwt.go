package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Shjra/Shjra-Maps/internal/models"
)

// TokenTTL est la fenêtre de validité du credential signé
const TokenTTL = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("token invalide")

// GenerateJWT signe un token HS256 portant le profil Discord complet
func GenerateJWT(user models.User, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"banner":        user.Banner,
		"iat":           now.Unix(),
		"exp":           now.Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT vérifie le token et reconstruit le principal depuis les claims
func ParseJWT(tokenString, secret string) (models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return models.User{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.User{}, ErrInvalidToken
	}

	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return models.User{}, ErrInvalidToken
	}

	return models.User{
		ID:            id,
		Username:      claimString(claims, "username"),
		Discriminator: claimString(claims, "discriminator"),
		Avatar:        claimString(claims, "avatar"),
		Banner:        claimString(claims, "banner"),
	}, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}
