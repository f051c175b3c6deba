package http

import (
	"net/http"
	"strings"

	"github.com/Lexv0lk/vending-machine/internal/gateway/domain"
	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	store "github.com/Lexv0lk/vending-machine/internal/store/domain"
	"github.com/gin-gonic/gin"
)

const (
	authHeaderName = "Authorization"

	actorContextKey   = "actor"
	sessionContextKey = "session_id"
)

// NewAuthMiddleware resolves the bearer token to a live session and stores the caller in the gin context.
func NewAuthMiddleware(service domain.AuthService, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderName)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "missing authorization header"})
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "invalid auth header"})
			return
		}

		identity, err := service.Resolve(c.Request.Context(), parts[1])
		if err != nil {
			handleDomainError(c, err, logger)
			c.Abort()
			return
		}

		c.Set(actorContextKey, identity.Actor)
		c.Set(sessionContextKey, identity.SessionID)
		c.Next()
	}
}

func actorFrom(c *gin.Context) (store.Actor, bool) {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return store.Actor{}, false
	}

	actor, ok := value.(store.Actor)
	return actor, ok
}

func sessionFrom(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}

func mustActor(c *gin.Context) (store.Actor, bool) {
	actor, ok := actorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "not authenticated"})
	}

	return actor, ok
}
