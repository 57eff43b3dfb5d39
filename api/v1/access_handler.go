package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cocobridge/penguinhop/internal/access"
	"github.com/cocobridge/penguinhop/internal/apperrors"
)

const INVALID_REQUEST = "invalid request"

var AccessService *access.AccessService

func RegisterAccessRoutes(g *echo.Group) {
	g.POST("/verify-access", VerifyAccessHandler)
}

func VerifyAccessHandler(c echo.Context) error {
	var req access.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": INVALID_REQUEST,
		})
	}

	resp, err := AccessService.VerifyAccess(c.Request().Context(), req.WalletAddress)
	if err != nil {
		code := apperrors.CodeOf(err)
		return c.JSON(code, echo.Map{
			"status":  code,
			"message": apperrors.MessageOf(err),
		})
	}

	return c.JSON(http.StatusOK, resp)
}
