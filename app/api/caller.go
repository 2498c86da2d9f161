package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joefazee/arena/models"
)

const contextCaller = "context_caller"

// Caller is the authenticated principal behind a request. Address is the
// ledger address whose signature the request carries.
type Caller struct {
	UserID  uuid.UUID
	Address string
}

// SetCaller stores the authenticated caller on the request
func SetCaller(c *gin.Context, caller Caller) {
	c.Set(contextCaller, caller)
}

// GetCaller returns the caller set by the auth middleware
func GetCaller(c *gin.Context) (Caller, bool) {
	v, ok := c.Get(contextCaller)
	if !ok {
		return Caller{}, false
	}
	caller, ok := v.(Caller)
	if !ok || caller.UserID == uuid.Nil {
		return Caller{}, false
	}
	return caller, true
}

// RequireCaller aborts with 401 when no caller is present
func RequireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetCaller(c); !ok {
			UnauthorizedResponse(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestMeta extracts the network details recorded in audit entries
func RequestMeta(c *gin.Context) models.RequestMeta {
	if c.Request == nil {
		return models.RequestMeta{}
	}
	return models.RequestMeta{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}
