package middleware

import (
	"log/slog"
	"net/http"

	"shortlet-booking/internal/pkg/config"
	"shortlet-booking/internal/pkg/password"

	"github.com/gin-gonic/gin"
)

const JobSecretHeader = "X-Cron-Secret"

// RequireJobSecret guards scheduler-only endpoints. The configured value is a
// bcrypt hash of the shared secret, never the secret itself.
func RequireJobSecret(cfg config.JobsConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.SecretHash == "" {
			slog.Error("job endpoint called without CRON_SECRET_HASH configured", "path", c.Request.URL.Path)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": gin.H{"message": "Job endpoints are not configured"},
			})
			c.Abort()
			return
		}

		secret := c.GetHeader(JobSecretHeader)
		if secret == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Job secret required"},
			})
			c.Abort()
			return
		}

		if err := password.ComparePassword(cfg.SecretHash, secret); err != nil {
			slog.Warn("job secret rejected", "path", c.Request.URL.Path, "client_ip", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid job secret"},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
