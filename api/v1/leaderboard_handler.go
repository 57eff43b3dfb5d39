package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cocobridge/penguinhop/internal/apperrors"
	"github.com/cocobridge/penguinhop/internal/score"
)

func RegisterLeaderboardRoutes(g *echo.Group) {
	g.GET("/leaderboard", GetLeaderboardHandler)
	g.GET("/health", HealthHandler)
}

func GetLeaderboardHandler(c echo.Context) error {
	entries, err := ScoreService.Leaderboard(c.Request().Context(), score.DefaultLeaderboardLimit)
	if err != nil {
		code := apperrors.CodeOf(err)
		return c.JSON(code, echo.Map{
			"status":  code,
			"message": apperrors.MessageOf(err),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":      http.StatusOK,
		"leaderboard": entries,
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Server running",
	})
}
