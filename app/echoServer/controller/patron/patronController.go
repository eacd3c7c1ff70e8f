package patron

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	ps "github.com/mawule-gabriel/TestingLibrary/service/patron"
)

type Controller struct {
	Svc ps.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/patrons
func (h *Controller) Create(c echo.Context) error {
	var req CreatePatronReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	p, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	id, err := h.Svc.Add(c.Request().Context(), p)
	if err != nil {
		if ps.Code(err) == ps.ErrBadInput {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		h.Log.Error("patron create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// GET /v1/patrons/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	p, err := h.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		if ps.Code(err) == ps.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		}
		h.Log.Error("patron detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, p)
}

// GET /v1/patrons
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("patron list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/patrons/search?name=term
func (h *Controller) Search(c echo.Context) error {
	rows, err := h.Svc.SearchByName(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		h.Log.Error("patron search", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// PATCH /v1/patrons/:id/address
func (h *Controller) UpdateAddress(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateAddressReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	if err := h.Svc.UpdateAddress(c.Request().Context(), id, req.Address); err != nil {
		switch ps.Code(err) {
		case ps.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		case ps.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("patron address update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "address updated"})
}

// DELETE /v1/patrons/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if ps.Code(err) == ps.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		}
		h.Log.Error("patron delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
