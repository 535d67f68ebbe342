package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"converse-server/internal/domain"
	"converse-server/internal/domain/user"
	"converse-server/internal/infrastructure/auth"
	"converse-server/internal/interfaces/httpserver/responses"
	"converse-server/internal/utils/apperrors"
)

const principalContextKey = "principal"

// AuthMiddleware verifies the bearer token and resolves the account before
// any handler runs. Requests without a valid credential never reach handler
// logic.
func AuthMiddleware(tokens *auth.TokenManager, users *user.Service, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			responses.HandleError(c, apperrors.Unauthorized("authorization header missing"))
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		if tokenString == "" {
			responses.HandleError(c, apperrors.Unauthorized("bearer token missing"))
			return
		}

		publicID, err := tokens.Verify(tokenString)
		if err != nil {
			logger.Warn().Err(err).Str("path", c.FullPath()).Msg("token validation failed")
			responses.HandleError(c, apperrors.Unauthorized("invalid token"))
			return
		}

		usr, err := users.Resolve(c.Request.Context(), publicID)
		if err != nil {
			responses.HandleError(c, err)
			return
		}

		setPrincipal(c, domain.Principal{
			UserID:   usr.ID,
			PublicID: usr.PublicID,
			Email:    usr.Email,
		})
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	val, ok := c.Get(principalContextKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := val.(domain.Principal)
	return principal, ok
}

func setPrincipal(c *gin.Context, principal domain.Principal) {
	c.Set(principalContextKey, principal)
	c.Set("user_id", principal.PublicID)
	c.Writer.Header().Set("X-User-ID", principal.PublicID)
}
