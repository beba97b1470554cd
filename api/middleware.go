package api

import (
	"strings"

	"hotelbooking/internal/apperr"
	"hotelbooking/internal/auth"
	"hotelbooking/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxClaimsKey    = "auth_claims"
	requestIDHeader = "X-Request-ID"
)

type errorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId"`
}

func renderError(c *gin.Context, err error) {
	appErr := apperr.As(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, errorResponse{
		Error:         appErr.Code,
		Message:       appErr.Message,
		CorrelationID: uuid.NewString(),
	})
}

// RequestID assigns an id when the gateway did not already set one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(requestIDHeader) == "" {
			c.Request.Header.Set(requestIDHeader, uuid.NewString())
		}
		c.Writer.Header().Set(requestIDHeader, c.GetHeader(requestIDHeader))
		c.Next()
	}
}

// AuthMiddleware validates the bearer token and stores its claims.
func AuthMiddleware(manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			renderError(c, apperr.Unauthorized("No authorization token"))
			return
		}

		var tokenString string
		if len(authHeader) > 7 && strings.ToLower(authHeader[:7]) == "bearer " {
			tokenString = authHeader[7:]
		} else {
			renderError(c, apperr.Unauthorized("Invalid authorization format"))
			return
		}

		claims, err := manager.ParseToken(tokenString)
		if err != nil {
			renderError(c, apperr.Unauthorized("Invalid token"))
			return
		}

		c.Set(ctxClaimsKey, claims)
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFrom(c)
		if claims == nil || !claims.HasRole(domain.RoleAdmin) {
			renderError(c, apperr.Forbidden("Access denied"))
			return
		}
		c.Next()
	}
}

func claimsFrom(c *gin.Context) *auth.Claims {
	value, ok := c.Get(ctxClaimsKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

func currentUserID(c *gin.Context) (int64, bool) {
	claims := claimsFrom(c)
	if claims == nil {
		renderError(c, apperr.Unauthorized("Missing user identification from token"))
		return 0, false
	}
	return claims.UserID, true
}
