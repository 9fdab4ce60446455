package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"creava/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ctxAccountKey = "auth_account"

// identityClaims is what the identity provider puts in its session tokens:
// the subject is the user id, plan and free_usage come from the provider's
// user metadata.
type identityClaims struct {
	Plan      string `json:"plan"`
	FreeUsage int64  `json:"free_usage"`
	jwt.RegisteredClaims
}

// AuthRequired verifies the Bearer token and loads the account snapshot
// into the context. Requests arrive already authenticated by the identity
// provider; this service only verifies and reads the claims.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing or invalid token"})
			return
		}
		tokenString := strings.TrimSpace(h[len("Bearer "):])

		var claims identityClaims
		token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing or invalid token"})
			return
		}

		plan := claims.Plan
		if plan != models.PLAN_PREMIUM {
			plan = models.PLAN_FREE
		}

		c.Set(ctxAccountKey, models.Account{
			ID:        claims.Subject,
			Plan:      plan,
			FreeUsage: claims.FreeUsage,
		})
		c.Next()
	}
}

// GetAccount returns the account loaded by AuthRequired.
func GetAccount(c *gin.Context) (models.Account, bool) {
	v, ok := c.Get(ctxAccountKey)
	if !ok {
		return models.Account{}, false
	}
	account, ok := v.(models.Account)
	return account, ok
}
