package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubware/server/internal/infrastructure/redisstore"
	"github.com/clubware/server/pkg/helpers"
	"github.com/clubware/server/pkg/response"
)

// Auth validates the access-token cookie and requires an active
// session. Sets userID, userName, and userEmail in the Gin context.
func Auth(sessions *redisstore.SessionStore, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}

		data, err := sessions.Get(c.Request.Context(), claims.UserID)
		if err != nil || len(data) == 0 {
			response.Abort(c, http.StatusUnauthorized, "session not found", nil)
			return
		}

		c.Set("userID", data["user_id"])
		c.Set("userName", data["name"])
		c.Set("userEmail", data["email"])
		c.Next()
	}
}
