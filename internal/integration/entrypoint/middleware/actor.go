// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// ActorKey is the context key for the user acting on the request.
	ActorKey ContextKey = "actor"

	// ActorHeader carries the acting user's display name. Authentication
	// happens upstream; this service only records who acted.
	ActorHeader = "X-User"

	maxActorLength = 255
)

// Actor returns a Gin middleware handler that stores the acting user in the context.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(ActorHeader))
		if len(actor) > maxActorLength {
			actor = actor[:maxActorLength]
		}
		if actor != "" {
			c.Set(string(ActorKey), actor)
		}
		c.Next()
	}
}

// GetActorFromContext returns the acting user, or "" when none was sent.
func GetActorFromContext(c *gin.Context) string {
	actor, exists := c.Get(string(ActorKey))
	if !exists {
		return ""
	}
	name, ok := actor.(string)
	if !ok {
		return ""
	}
	return name
}
