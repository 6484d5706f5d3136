package handler

import (
	"net/http"
	"strconv"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/service"
	"github.com/labstack/echo/v4"
)

type AnalyticsHandler struct {
	svc service.AnalyticsService
}

func NewAnalyticsHandler(svc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

func (h *AnalyticsHandler) RegisterRoutes(api *echo.Group, auth echo.MiddlewareFunc) {
	analytics := api.Group("/analytics", auth)
	analytics.GET("/agent/stats", h.AgentStats)
	analytics.GET("/agent/package-performance", h.AgentPackagePerformance)
	analytics.GET("/tourist/stats", h.TouristStats)
}

func (h *AnalyticsHandler) AgentStats(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	stats, err := h.svc.AgentStats(c.Request().Context(), caller)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *AnalyticsHandler) AgentPackagePerformance(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	// A malformed limit falls back to the default
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.svc.AgentPackagePerformance(c.Request().Context(), caller, limit)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AnalyticsHandler) TouristStats(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	stats, err := h.svc.TouristStats(c.Request().Context(), caller)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
