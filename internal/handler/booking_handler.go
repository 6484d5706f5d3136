package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/dto"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(api *echo.Group, auth echo.MiddlewareFunc) {
	bookings := api.Group("/bookings", auth)
	bookings.POST("", h.CreateBooking)
	bookings.GET("", h.ListBookings)
	bookings.GET("/payment/pending", h.ListPendingVerification)
	bookings.GET("/tourist/:touristId", h.ListByTourist)
	bookings.GET("/package/:packageId", h.ListByPackage)
	bookings.GET("/:id", h.GetBooking)
	bookings.POST("/:id/payment-proof", h.UploadPaymentProof)
	bookings.PUT("/:id/payment-verify", h.VerifyPayment)
	bookings.PUT("/:id/payment-reject", h.RejectPayment)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), caller, req.ToInput())
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "booking")
	if err != nil {
		return err
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), caller, id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	bookings, err := h.svc.ListBookings(c.Request().Context(), caller, service.BookingListFilter{
		TouristID:     c.QueryParam("tourist_id"),
		PackageID:     c.QueryParam("package_id"),
		Status:        c.QueryParam("status"),
		PaymentStatus: c.QueryParam("payment_status"),
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ListResponse[dto.BookingResponse]{Data: dto.ToBookingResponses(bookings)})
}

func (h *BookingHandler) ListByTourist(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	touristID, err := pathID(c, "touristId", "tourist")
	if err != nil {
		return err
	}

	bookings, err := h.svc.ListByTourist(c.Request().Context(), caller, touristID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *BookingHandler) ListByPackage(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	packageID, err := pathID(c, "packageId", "package")
	if err != nil {
		return err
	}

	bookings, err := h.svc.ListByPackage(c.Request().Context(), caller, packageID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *BookingHandler) ListPendingVerification(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	bookings, err := h.svc.ListPendingVerification(c.Request().Context(), caller)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *BookingHandler) UploadPaymentProof(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "booking")
	if err != nil {
		return err
	}

	upload, err := proofUpload(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.UploadPaymentProof(c.Request().Context(), caller, id, upload)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) VerifyPayment(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "booking")
	if err != nil {
		return err
	}

	booking, err := h.svc.VerifyPayment(c.Request().Context(), caller, id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) RejectPayment(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "booking")
	if err != nil {
		return err
	}

	var req dto.RejectPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.RejectPayment(c.Request().Context(), caller, id, req.Reason)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// proofUpload reads the payment proof from the "proof" or "file" form field.
// A missing file yields a nil upload for the service to reject.
func proofUpload(c echo.Context) (*service.Upload, error) {
	for _, field := range []string{"proof", "file"} {
		fh, err := c.FormFile(field)
		if err != nil {
			continue
		}
		data, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		return &service.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Data:        data,
		}, nil
	}
	return nil, nil
}

// readUpload reads at most one byte past the size limit so oversized files
// are still reported as too large without being buffered whole.
func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid file upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxUploadSize+1))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid file upload")
	}
	return data, nil
}
