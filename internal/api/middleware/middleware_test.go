package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/bingo-api/internal/pkg/jwthelper"
)

const signingKey = "middleware-test-key"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/private", NewAuthenticator(signingKey).VerifyJWT(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"user_id":  ctx.GetUint(ContextKeyUserID),
			"username": ctx.GetString(ContextKeyUsername),
		})
	})

	return r
}

func TestVerifyJWT(t *testing.T) {
	valid, err := jwthelper.GenerateToken([]byte(signingKey), 7, "master", "test", time.Hour)
	require.NoError(t, err)
	expired, err := jwthelper.GenerateToken([]byte(signingKey), 7, "master", "test", -time.Hour)
	require.NoError(t, err)
	foreign, err := jwthelper.GenerateToken([]byte("other-key"), 7, "master", "test", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid", header: "Bearer " + valid, want: http.StatusOK},
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "no bearer prefix", header: valid, want: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, want: http.StatusUnauthorized},
		{name: "wrong key", header: "Bearer " + foreign, want: http.StatusUnauthorized},
	}

	r := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"user_id":7,"username":"master"}`, rec.Body.String())
			}
		})
	}
}

func TestConfigCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ConfigCORS([]string{"http://localhost:3000"}))
	r.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
