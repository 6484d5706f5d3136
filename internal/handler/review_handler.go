package handler

import (
	"net/http"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/dto"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/service"
	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) RegisterRoutes(api *echo.Group, auth echo.MiddlewareFunc) {
	reviews := api.Group("/reviews")
	reviews.GET("/package/:packageId", h.ListByPackage)
	reviews.GET("/tourist/:touristId", h.ListByTourist, auth)
	reviews.POST("", h.CreateReview, auth)
}

func (h *ReviewHandler) ListByPackage(c echo.Context) error {
	packageID, err := pathID(c, "packageId", "package")
	if err != nil {
		return err
	}

	reviews, err := h.svc.ListByPackage(c.Request().Context(), packageID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReviewResponses(reviews))
}

func (h *ReviewHandler) ListByTourist(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	touristID, err := pathID(c, "touristId", "tourist")
	if err != nil {
		return err
	}

	reviews, err := h.svc.ListByTourist(c.Request().Context(), caller, touristID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReviewResponses(reviews))
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	review, err := h.svc.CreateReview(c.Request().Context(), caller, req.ToInput())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToReviewResponse(review))
}
