package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/bingo-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/bingo-api/internal/pkg/jwthelper"
)

const (
	ContextKeyUserID   = "userID"
	ContextKeyUsername = "username"
)

var errMissingToken = errors.New("missing bearer token")

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// ParseToken validates a raw host token, e.g. one sent over a socket.
func (a *Authenticator) ParseToken(token string) (*jwthelper.UserClaims, error) {
	return jwthelper.ParseToken(a.signingKey, token)
}

// VerifyJWT rejects requests without a valid "Authorization: Bearer" token
// and stores the host identity in the gin context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := a.ParseToken(token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Set(ContextKeyUsername, claims.Username)
		ctx.Next()
	}
}
