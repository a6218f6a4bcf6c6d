package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gridscope/transformer-asset-service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.EnvConfig {
	cfg := &config.EnvConfig{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.Expire = 3600
	return cfg
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	adminID := uuid.New()

	tokenString, err := NewToken(adminID, "admin", cfg)
	require.NoError(t, err)

	token, err := ParseToken(tokenString, cfg)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, adminID.String(), claims["admin_id"])
	assert.Equal(t, "admin", claims["role"])
}

func TestParseToken_RejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()

	tokenString, err := NewToken(uuid.New(), "admin", cfg)
	require.NoError(t, err)

	other := testJWTConfig()
	other.JWT.SecretKey = "different-secret"
	_, err = ParseToken(tokenString, other)
	assert.Error(t, err)
}

func TestInjectClaimsToContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	adminID := uuid.New()
	claims := jwt.MapClaims{"admin_id": adminID.String(), "role": "viewer"}
	require.NoError(t, InjectClaimsToContext(c, claims))

	got, err := GetAdminIDFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, adminID, got)
	assert.Equal(t, "viewer", c.GetString("role"))

	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Error(t, InjectClaimsToContext(c2, jwt.MapClaims{"admin_id": "not-a-uuid"}))

	c3, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err = GetAdminIDFromContext(c3)
	assert.Error(t, err)
}
