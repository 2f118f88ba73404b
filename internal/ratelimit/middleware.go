package ratelimit

import (
	"fmt"
	"net/http"

	"anxonews-server/internal/observability"

	"github.com/gin-gonic/gin"
)

const msgRateLimited = "Demasiadas solicitudes. Intenta más tarde."

// Middleware creates a Gin middleware that throttles by source IP.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		clientIP := observability.GetRealClientIP(c)

		result := s.CheckAndConsume(ctx, clientIP)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetAt.Unix()))

		if !result.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", result.RetryAfterSecs))
			ctx = observability.WithFields(ctx,
				observability.Field{Key: "client_ip", Value: clientIP},
				observability.Field{Key: "retry_after_secs", Value: result.RetryAfterSecs},
			)
			s.logger.Warn(ctx, "rate limit exceeded")

			c.JSON(http.StatusTooManyRequests, gin.H{"error": msgRateLimited})
			c.Abort()
			return
		}

		c.Next()
	}
}
