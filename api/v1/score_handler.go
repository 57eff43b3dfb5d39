package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cocobridge/penguinhop/internal/apperrors"
	"github.com/cocobridge/penguinhop/internal/score"
)

var ScoreService *score.ScoreService

func RegisterScoreRoutes(g *echo.Group) {
	g.POST("/submit-score", SubmitScoreHandler)
}

// SubmitScoreHandler uses the status-in-body contract throughout: the
// vendor always gets transport 200 with the logical code in the body.
func SubmitScoreHandler(c echo.Context) error {
	var req score.SubmissionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid score data format",
		})
	}

	if err := ScoreService.Submit(c.Request().Context(), &req); err != nil {
		code := apperrors.CodeOf(err)
		return c.JSON(http.StatusOK, echo.Map{
			"status":  code,
			"message": apperrors.MessageOf(err),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": http.StatusOK})
}
