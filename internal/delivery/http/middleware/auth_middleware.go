package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"jobboard-backend/config"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/auth"
	"jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies the Authorization bearer token (HS256 secret or RS256 via JWKS),
// resolves its subject to a stored user and puts the identity on the context.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bearer header only; session cookies are not accepted
		var tokenString string
		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}

		if tokenString == "" {
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, http.StatusUnauthorized, "Not authenticated", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				if cfg.JWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but JWT_SECRET is not configured")
				}
				return []byte(cfg.JWTSecret), nil
			}

			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok && jwksProvider.Enabled() {
				return jwksProvider.KeyFunc(token)
			}

			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})

		if err != nil || !token.Valid {
			logger.Log.Debugw("Token validation failed", "error", err)
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, http.StatusUnauthorized, "Could not validate credentials", nil)
			c.Abort()
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			response.Error(c, http.StatusUnauthorized, "Could not validate credentials", nil)
			c.Abort()
			return
		}

		user, err := authUC.GetCurrentUser(c.Request.Context(), sub)
		if err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Code == http.StatusUnauthorized {
				response.Error(c, http.StatusUnauthorized, appErr.Message, nil)
				c.Abort()
				return
			}
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUsername), user.Username)
		c.Set(string(domain.KeyUserEmail), user.Email)

		c.Next()
	}
}
