package staff

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	staffsvc "github.com/mawule-gabriel/TestingLibrary/service/staff"
)

type Controller struct {
	Svc staffsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/staff/login
func (h *Controller) Login(c echo.Context) error {
	var req LoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	st, token, err := h.Svc.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		h.Log.Error("staff login", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if st == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token, "staff": st})
}

// POST /v1/staff
func (h *Controller) Create(c echo.Context) error {
	var req CreateStaffReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	st, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	id, err := h.Svc.Add(c.Request().Context(), st, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, staffsvc.ErrEmailTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "email already registered"})
		case errors.Is(err, staffsvc.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("staff create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// GET /v1/staff
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("staff list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// DELETE /v1/staff/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, staffsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		}
		h.Log.Error("staff delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
