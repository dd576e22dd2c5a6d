package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/chopsmo/chopsmo-go/backend/internal/types"
)

type staticValidator struct {
	claims *types.TokenClaims
}

func (v staticValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	return v.claims, nil
}

func TestRateLimitKeyPrefersAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/recommendations", nil)
	c.Request.RemoteAddr = "203.0.113.9:4242"

	assert.Equal(t, "203.0.113.9", rateLimitKey(c))

	userID := uuid.New()
	c.Set("user_id", userID)
	assert.Equal(t, userID.String(), rateLimitKey(c))
}

func TestRateLimitKeySeesUserAfterOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	validator := staticValidator{claims: &types.TokenClaims{UserID: userID, Username: "amina"}}

	var key string
	router := gin.New()
	router.POST("/recommendations", OptionalAuthMiddleware(validator), func(c *gin.Context) {
		key = rateLimitKey(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/recommendations", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), key)
}
