package user

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joefazee/arena/app/api"
	"github.com/joefazee/arena/internal/security"
)

// AuthMiddleware verifies the bearer token and sets the caller. The caller's
// address comes from the token and must still match the user's record.
func AuthMiddleware(tokenMaker security.Maker, authService AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Vary", AuthorizationHeaderKey)

		fields := strings.Fields(c.GetHeader(AuthorizationHeaderKey))
		if len(fields) != 2 || fields[0] != AuthorizationTypeBearer {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil || payload.Scope != security.TokenScopeAccess {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		principal, err := authService.GetPrincipal(c.Request.Context(), payload.UserID)
		if err != nil || principal.Address != payload.Address {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}
		if !principal.Active {
			api.ForbiddenResponse(c, "User account is inactive")
			c.Abort()
			return
		}

		ContextSetToken(c, payload)
		api.SetCaller(c, api.Caller{UserID: principal.UserID, Address: principal.Address})
		c.Next()
	}
}
