package router

import (
	"olistInsights/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupSystemRoutes(e *echo.Echo, handler *rest.ReportHandler) {
	e.GET("/health", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// SetupReportRoutes mounts the report API. authRequired may be nil when no
// JWT secret is configured.
func SetupReportRoutes(api *echo.Group, handler *rest.ReportHandler, authRequired echo.MiddlewareFunc) {
	var mw []echo.MiddlewareFunc
	if authRequired != nil {
		mw = append(mw, authRequired)
	}

	reports := api.Group("/reports", mw...)
	reports.GET("", handler.GetReport)
	reports.GET("/:group", handler.GetReportGroup)
}
