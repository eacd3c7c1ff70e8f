package reservation

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/mawule-gabriel/TestingLibrary/model"
	rs "github.com/mawule-gabriel/TestingLibrary/service/reservation"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/reservations
func (h *Controller) Create(c echo.Context) error {
	var req CreateReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	res, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	id, err := h.Svc.Add(c.Request().Context(), res)
	if err != nil {
		switch rs.Code(err) {
		case rs.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		case rs.ErrPatronNotFound, rs.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("reservation create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// GET /v1/reservations/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	res, err := h.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		if rs.Code(err) == rs.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		}
		h.Log.Error("reservation detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, res)
}

// GET /v1/reservations
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("reservation list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// PATCH /v1/reservations/:id/status
func (h *Controller) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	status, err := model.ParseReservationStatus(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	if err := h.Svc.UpdateStatus(c.Request().Context(), id, status); err != nil {
		if rs.Code(err) == rs.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		}
		h.Log.Error("reservation status update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "status updated"})
}

// DELETE /v1/reservations/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if rs.Code(err) == rs.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		}
		h.Log.Error("reservation delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
