package v1

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/cocobridge/penguinhop/internal/apperrors"
	"github.com/cocobridge/penguinhop/internal/session"
)

var SessionService *session.SessionService

func RegisterSessionRoutes(g *echo.Group) {
	g.GET("", GetSessionHandler)
}

// GetSessionHandler returns the session referenced by a valid resume
// token, letting the frontend restore an active game without a fresh
// NFT check.
func GetSessionHandler(c echo.Context) error {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
	}
	claims, ok := token.Claims.(*session.SessionClaims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
	}

	sess, err := SessionService.Find(c.Request().Context(), claims.TournamentID, claims.UserID)
	if err != nil {
		code := apperrors.CodeOf(err)
		return c.JSON(code, echo.Map{
			"status":  code,
			"message": apperrors.MessageOf(err),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"session": sess,
	})
}
