package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gridscope/transformer-asset-service/config"
)

func ExtractToken(c *gin.Context) string {
	if token, err := c.Cookie("access_token"); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.Fields(authHeader)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

func ParseToken(tokenString string, config *config.EnvConfig) (*jwt.Token, error) {
	secret := []byte(config.JWT.SecretKey)
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
}

// NewToken issues an HMAC token carrying the admin identity and role.
func NewToken(adminID uuid.UUID, role string, config *config.EnvConfig) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": adminID.String(),
		"role":     role,
		"exp":      time.Now().Add(time.Duration(config.JWT.Expire) * time.Second).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWT.SecretKey))
}

func InjectClaimsToContext(c *gin.Context, claims jwt.MapClaims) error {
	adminIDStr, ok := claims["admin_id"].(string)
	if !ok {
		return errors.New("invalid admin_id claim")
	}
	if _, err := uuid.Parse(adminIDStr); err != nil {
		return errors.New("invalid admin_id claim")
	}
	c.Set("admin_id", adminIDStr)

	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	} else {
		c.Set("role", "")
	}
	return nil
}

// GetAdminIDFromContext returns the acting principal injected by the auth
// middleware as a parsed UUID.
func GetAdminIDFromContext(c *gin.Context) (uuid.UUID, error) {
	value, exists := c.Get("admin_id")
	if !exists {
		return uuid.Nil, errors.New("admin_id is missing from context")
	}

	switch v := value.(type) {
	case string:
		parsed, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, errors.New("invalid admin_id format: " + err.Error())
		}
		return parsed, nil
	case uuid.UUID:
		return v, nil
	default:
		return uuid.Nil, errors.New("invalid admin_id type in context")
	}
}
