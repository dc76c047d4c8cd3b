package router

import (
	"github.com/labstack/echo/v4"

	"waypost/internal/adapter/api/handler"
)

func SetupDevRouter(e *echo.Echo, environment string) {
	if environment == "production" {
		return
	}
	devTokenHandler := handler.GetDevTokenHandler()

	e.POST("/v1/dev/token", devTokenHandler.GetLongLivedToken)
}
