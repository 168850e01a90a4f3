// Package auth provides JWT authentication middleware for the gin routes.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	httperr "github.com/aevon-lab/xapi-connect/internal/core/errors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const contextKeyAuth = "auth"

// Context represents the authenticated caller.
type Context struct {
	Subject string   `json:"subject"`
	Issuer  string   `json:"issuer"`
	Roles   []string `json:"roles,omitempty"`
	Expires int64    `json:"exp,omitempty"`
}

// HasRole reports whether the caller carries role.
func (c *Context) HasRole(role string) bool {
	return c != nil && slices.Contains(c.Roles, role)
}

// FromContext returns the caller stored by Middleware, nil if there is none.
func FromContext(c *gin.Context) *Context {
	if v, ok := c.Get(contextKeyAuth); ok {
		if authCtx, ok := v.(*Context); ok {
			return authCtx
		}
	}
	return nil
}

// Config holds the HS256 verification settings.
type Config struct {
	Secret []byte
	Issuer string // checked only when non-empty
}

// Middleware validates "Authorization: Bearer <jwt>" and stores the caller in
// the gin context. Requests without a valid token are rejected with 401.
func Middleware(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.ErrorResponse{
				ErrorType: httperr.HttpUnauthorizedError,
				Message:   "missing bearer token",
			})
			return
		}

		authCtx, err := ValidateToken(strings.TrimPrefix(authHeader, "Bearer "), cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.ErrorResponse{
				ErrorType: httperr.HttpUnauthorizedError,
				Message:   "invalid token",
			})
			return
		}

		c.Set(contextKeyAuth, authCtx)
		c.Next()
	}
}

// ValidateToken verifies an HS256 token and extracts the caller.
func ValidateToken(tokenString string, cfg Config) (*Context, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("jwt secret not configured")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return cfg.Secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims type")
	}

	authCtx := &Context{
		Subject: getStringClaim(claims, "sub"),
		Issuer:  getStringClaim(claims, "iss"),
	}
	if exp, ok := claims["exp"].(float64); ok {
		authCtx.Expires = int64(exp)
	}
	if roles, ok := claims["roles"].([]interface{}); ok {
		for _, r := range roles {
			if s, ok := r.(string); ok {
				authCtx.Roles = append(authCtx.Roles, s)
			}
		}
	}
	return authCtx, nil
}

// IssueToken signs an HS256 token for subject with the given roles.
func IssueToken(cfg Config, subject string, roles []string, claims jwt.MapClaims) (string, error) {
	mc := jwt.MapClaims{"sub": subject, "roles": roles}
	if cfg.Issuer != "" {
		mc["iss"] = cfg.Issuer
	}
	for k, v := range claims {
		mc[k] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(cfg.Secret)
}

func getStringClaim(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}
