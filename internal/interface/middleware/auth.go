package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/karanatwal4/todo-api/internal/application"
	"github.com/karanatwal4/todo-api/pkg/response"
)

// TokenHeader is the request header carrying the opaque session token.
const TokenHeader = "x-auth"

// Context keys set on successful authentication.
const (
	CtxUserKey   = "user"
	CtxUserIDKey = "userID"
	CtxTokenKey  = "token"
)

// Auth validates the x-auth token and ensures it is still active in the
// user's stored token list. It sets user, userID, and token in the Gin
// context on success.
func Auth(svc *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing auth token", nil)
			return
		}
		u, err := svc.Verify(c.Request.Context(), token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid auth token", nil)
			return
		}
		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, u.ID.Hex())
		c.Set(CtxTokenKey, token)
		c.Next()
	}
}
