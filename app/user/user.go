package user

import (
	"github.com/gin-gonic/gin"

	"github.com/joefazee/arena/internal/security"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "Bearer"
)

const ContextToken = "context_token"

// ContextSetToken stores the verified token payload on the request
func ContextSetToken(c *gin.Context, payload *security.Payload) *gin.Context {
	c.Set(ContextToken, payload)
	return c
}

// ContextGetToken returns the payload set by AuthMiddleware
func ContextGetToken(c *gin.Context) (*security.Payload, bool) {
	v, ok := c.Get(ContextToken)
	if !ok {
		return nil, false
	}
	payload, ok := v.(*security.Payload)
	return payload, ok
}
