package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaryEddythe/Lustrea/internal/auth"
	"github.com/MaryEddythe/Lustrea/internal/models"
)

func setupRouter(t *testing.T) (*gin.Engine, *auth.TokenStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	tokens := auth.NewTokenStore(rdb, "test-secret")

	r := gin.New()
	r.GET("/protected", AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"admin_id": c.MustGet(ContextAdminID).(uint),
			"role":     c.MustGet(ContextAdminRole).(string),
		})
	})

	return r, tokens
}

func request(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r, tokens := setupRouter(t)

	token, err := tokens.Issue(context.Background(), &models.Admin{
		ID:   5,
		Role: "admin",
	})
	require.NoError(t, err)

	w := request(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"admin_id":5`)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r, _ := setupRouter(t)

	w := request(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	r, _ := setupRouter(t)

	w := request(r, "Token abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	r, tokens := setupRouter(t)
	ctx := context.Background()

	token, err := tokens.Issue(ctx, &models.Admin{ID: 5, Role: "admin"})
	require.NoError(t, err)

	require.NoError(t, tokens.RevokeAll(ctx, 5))

	w := request(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
