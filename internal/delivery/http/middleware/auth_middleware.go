package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"recruiter-pipeline-backend/config"
	"recruiter-pipeline-backend/internal/delivery/http/response"
	"recruiter-pipeline-backend/internal/domain"
	"recruiter-pipeline-backend/pkg/auth"
	"recruiter-pipeline-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies the bearer token and sets the owner id from its sub claim.
// The owner id is the tenant boundary for every store call downstream.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256", "RS256"}))

	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			rejectUnauthorized(c, security.EventTokenMissing, "no credentials", "Authorization header or auth_token cookie required")
			return
		}

		token, err := parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			switch token.Method.(type) {
			case *jwt.SigningMethodHMAC:
				if cfg.JWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but JWT_SECRET is not configured")
				}
				return []byte(cfg.JWTSecret), nil
			case *jwt.SigningMethodRSA:
				if jwksProvider == nil {
					return nil, fmt.Errorf("RS256 token received but JWKS_URL is not configured")
				}
				return jwksProvider.KeyFunc(token)
			}
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})
		if err != nil || !token.Valid {
			reason := "invalid token"
			if err != nil {
				reason = err.Error()
			}
			rejectUnauthorized(c, security.EventTokenInvalid, reason, "Invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			rejectUnauthorized(c, security.EventTokenInvalid, "unreadable claims", "Invalid claims")
			return
		}

		sub, _ := claims["sub"].(string)
		if strings.TrimSpace(sub) == "" {
			rejectUnauthorized(c, security.EventTokenInvalid, "missing sub claim", "Invalid claims")
			return
		}
		email, _ := claims["email"].(string)

		c.Set(string(domain.KeyOwnerID), sub)
		c.Set(string(domain.KeyUserEmail), email)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return header
	}
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}

func rejectUnauthorized(c *gin.Context, event security.EventType, reason, message string) {
	security.DefaultLogger().LogUnauthorized(
		c.Request.Context(),
		event,
		c.ClientIP(),
		c.GetHeader("User-Agent"),
		c.GetString(string(domain.KeyRequestID)),
		reason,
	)
	response.Error(c, http.StatusUnauthorized, message, nil)
	c.Abort()
}
