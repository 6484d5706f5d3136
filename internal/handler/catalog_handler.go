package handler

import (
	"net/http"
	"strings"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/dto"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/repository"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/service"
	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	svc service.CatalogService
}

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) RegisterRoutes(api *echo.Group, auth echo.MiddlewareFunc) {
	destinations := api.Group("/destinations")
	destinations.GET("", h.ListDestinations)
	destinations.GET("/:id", h.GetDestination)
	destinations.POST("", h.CreateDestination, auth)

	packages := api.Group("/packages")
	packages.GET("", h.ListPackages)
	packages.GET("/agent/:agentId", h.ListAgentPackages)
	packages.GET("/:id", h.GetPackage)
	packages.POST("", h.CreatePackage, auth)
}

func (h *CatalogHandler) ListDestinations(c echo.Context) error {
	destinations, err := h.svc.ListDestinations(c.Request().Context(), repository.DestinationFilter{
		Country: c.QueryParam("country"),
		Name:    c.QueryParam("name"),
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToDestinationResponses(destinations))
}

func (h *CatalogHandler) GetDestination(c echo.Context) error {
	id, err := pathID(c, "id", "destination")
	if err != nil {
		return err
	}

	destination, err := h.svc.GetDestination(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToDestinationResponse(destination))
}

func (h *CatalogHandler) CreateDestination(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req dto.CreateDestinationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	destination, err := h.svc.CreateDestination(c.Request().Context(), caller, req.ToInput())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToDestinationResponse(destination))
}

func (h *CatalogHandler) ListPackages(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		query = c.QueryParam("search")
	}

	packages, err := h.svc.ListPackages(c.Request().Context(), service.PackageListFilter{
		Destination: c.QueryParam("destination"),
		Query:       query,
		MinPrice:    c.QueryParam("minPrice"),
		MaxPrice:    c.QueryParam("maxPrice"),
		SortBy:      c.QueryParam("sortBy"),
		Order:       c.QueryParam("order"),
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPackageResponses(packages))
}

func (h *CatalogHandler) GetPackage(c echo.Context) error {
	id, err := pathID(c, "id", "package")
	if err != nil {
		return err
	}

	pkg, err := h.svc.GetPackage(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPackageResponse(pkg))
}

func (h *CatalogHandler) ListAgentPackages(c echo.Context) error {
	agentID, err := pathID(c, "agentId", "agent")
	if err != nil {
		return err
	}

	packages, err := h.svc.ListAgentPackages(c.Request().Context(), agentID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPackageResponses(packages))
}

// CreatePackage accepts either a JSON body or a multipart form whose
// "images" parts are image files.
func (h *CatalogHandler) CreatePackage(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req dto.CreatePackageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var uploads []service.Upload
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
		}
		for _, fh := range form.File["images"] {
			data, err := readUpload(fh)
			if err != nil {
				return err
			}
			uploads = append(uploads, service.Upload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get(echo.HeaderContentType),
				Data:        data,
			})
		}
	}

	pkg, err := h.svc.CreatePackage(c.Request().Context(), caller, req.ToInput(), uploads)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToPackageResponse(pkg))
}
