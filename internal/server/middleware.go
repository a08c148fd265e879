package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	userdomain "github.com/warungkit/warungpos/internal/user/domain"
	"go.uber.org/zap"
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	ctxKeyUserID   = "auth.user_id"
	ctxKeyUserRole = "auth.user_role"
)

// IdentityRequired trusts the identity headers set by the fronting auth
// proxy. Requests without them are rejected before any handler runs.
func (s *Server) IdentityRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(headerUserID))
		roleValue := strings.TrimSpace(c.GetHeader(headerUserRole))
		if userID == "" || roleValue == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		role, err := userdomain.ParseRole(roleValue)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(ctxKeyUserID, userID)
		c.Set(ctxKeyUserRole, role)
		c.Next()
	}
}

func (s *Server) RequireRole(roles ...userdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := currentRole(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		for _, role := range roles {
			if current == role {
				c.Next()
				return
			}
		}
		AbortWithError(c, ErrForbidden)
	}
}

// PaymentRateLimit throttles payment submissions per cashier when the
// redis limiter is configured. Limiter outages fail open.
func (s *Server) PaymentRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.paymentLimiter.Enabled() {
			c.Next()
			return
		}

		cashierID, _ := currentUserID(c)
		allowed, err := s.paymentLimiter.AllowCashier(c.Request.Context(), cashierID)
		if err != nil {
			s.log.Warn("payment rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			AbortWithError(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

func RequestLogMiddleware(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http.access")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func currentUserID(c *gin.Context) (string, bool) {
	value, ok := c.Get(ctxKeyUserID)
	if !ok {
		return "", false
	}
	id, ok := value.(string)
	return id, ok
}

func currentRole(c *gin.Context) (userdomain.Role, bool) {
	value, ok := c.Get(ctxKeyUserRole)
	if !ok {
		return "", false
	}
	role, ok := value.(userdomain.Role)
	return role, ok
}
