package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "yourtranscript/internal/api/errors"
	"yourtranscript/internal/app/auth"
)

const identityKey = "identity"

// Auth resolves the bearer token into a user identity and stores it in
// the request context. Requests without a valid token are rejected with
// 401 before any handler runs.
func Auth(verifier auth.Verifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			HandleError(c, apierrors.NewUnauthorizedError("Unauthorized"))
			return
		}

		ident, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrUnauthenticated) {
				logger.Error("token verification failed",
					zap.String("request_id", c.GetString("request_id")),
					zap.Error(err),
				)
			}
			HandleError(c, apierrors.NewUnauthorizedError("Unauthorized"))
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity set by Auth.
func IdentityFrom(c *gin.Context) (*auth.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	ident, ok := v.(*auth.Identity)
	return ident, ok
}
