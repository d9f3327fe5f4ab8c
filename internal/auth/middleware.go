package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const subjectContextKey = "auth_subject"

// Middleware validates bearer tokens and stores the authenticated subject in
// the context.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := s.extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "authorization required"})
			return
		}
		subject, err := s.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "invalid token"})
			return
		}
		c.Set(subjectContextKey, subject)
		c.Next()
	}
}

// SubjectFromContext retrieves the authenticated subject from the gin context.
func SubjectFromContext(c *gin.Context) (string, bool) {
	val, ok := c.Get(subjectContextKey)
	if !ok {
		return "", false
	}
	subject, ok := val.(string)
	return subject, ok
}

func (s *Service) extractToken(c *gin.Context) string {
	authHeader := c.GetHeader(s.headerName)
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
