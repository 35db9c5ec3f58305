package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
)

const ContextPrincipal = "principal"

// Claims is the token payload issued by the identity service.
type Claims struct {
	SalonID string `json:"salonId"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	secret := []byte(cfg.JWTSecret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		var claims Claims
		token, err := jwt.ParseWithClaims(parts[1], &claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		salonID, err := uuid.Parse(claims.SalonID)
		if err != nil || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		p := &auth.Principal{
			UserID:  claims.Subject,
			SalonID: salonID,
			Role:    auth.Role(claims.Role),
		}

		c.Set(ContextPrincipal, p)
		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), p))

		c.Next()
	}
}

// PrincipalFrom returns the caller set by AuthMiddleware, or nil.
func PrincipalFrom(c *gin.Context) *auth.Principal {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}

// SignToken issues an HMAC token carrying p. Used by tooling and tests.
func SignToken(secret string, p auth.Principal, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = p.UserID
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		SalonID:          p.SalonID.String(),
		Role:             string(p.Role),
		RegisteredClaims: claims,
	})
	return token.SignedString([]byte(secret))
}
