package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/fileshare-io/fileshare-api/config"
	"github.com/fileshare-io/fileshare-api/infra"
	"github.com/fileshare-io/fileshare-api/utils"
)

// AuthMiddleware validates the session token issued by the OAuth sign-in
// flow. Tokens carry a session_id; when present, the session must still
// exist in Redis (revoked sessions are deleted there).
func AuthMiddleware(redis *infra.RedisClient, config *config.EnvConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := utils.ExtractToken(c)

		if tokenStr == "" {
			tokenStr = c.Query("access_token")
		}

		if tokenStr == "" {
			utils.JSON401(c, "Authorization token is required")
			c.Abort()
			return
		}

		parsedToken, err := utils.ParseToken(tokenStr, config)
		if err != nil || !parsedToken.Valid {
			utils.JSON401(c, "Invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := parsedToken.Claims.(jwt.MapClaims)
		if !ok {
			utils.JSON401(c, "Invalid token claims")
			c.Abort()
			return
		}

		if err := utils.InjectClaimsToContext(c, claims); err != nil {
			utils.JSON401(c, "Invalid claims")
			c.Abort()
			return
		}

		if sessionID := c.GetString("session_id"); sessionID != "" {
			alive, err := redis.SessionExists(c.Request.Context(), sessionID)
			if err != nil || !alive {
				utils.JSON401(c, "Session expired or revoked")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
