package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cocobridge/penguinhop/internal/logger"
	"github.com/cocobridge/penguinhop/internal/session"
)

// VendorAuth validates the shared-secret bearer credential the game
// vendor sends with score submissions. Rejections follow the vendor's
// status-in-body contract: transport 200, logical 401.
func VendorAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			secret := os.Getenv("VENDOR_SHARED_SECRET")
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(auth, "Bearer ")
			if secret == "" || !found ||
				subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				logger.Warn("score submission rejected, invalid credentials",
					zap.String("remote", c.RealIP()))
				return c.JSON(http.StatusOK, echo.Map{
					"status":  http.StatusUnauthorized,
					"message": "Invalid authentication",
				})
			}
			return next(c)
		}
	}
}

// SetupJWTMiddleware guards routes that accept a session resume token.
func SetupJWTMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(session.SessionClaims)
		},
		SigningKey: []byte(os.Getenv("JWT_SECRET")),
	})
}
