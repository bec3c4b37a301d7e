package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/pkg/auth"
)

const ContextKeyClaims = "claims"

type TokenValidator interface {
	ValidateAccessToken(token string) (*domain.Claims, error)
}

// Auth requires a valid "Bearer <token>" Authorization header and stores the
// caller's claims on the context.
func Auth(v TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "authorization header must be a bearer token")
			return
		}

		claims, err := v.ValidateAccessToken(strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				abortUnauthorized(c, "token has expired")
				return
			}
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) (*domain.Claims, bool) {
	v, ok := c.Get(ContextKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*domain.Claims)
	return claims, ok && claims != nil
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="medtimeline"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
