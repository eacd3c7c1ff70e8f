package book

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/mawule-gabriel/TestingLibrary/model"
	booksvc "github.com/mawule-gabriel/TestingLibrary/service/book"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/books
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	b := req.toModel()
	id, err := h.Svc.Add(c.Request().Context(), b)
	if err != nil {
		switch booksvc.Code(err) {
		case booksvc.ErrValidation:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("book create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// GET /v1/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	b, err := h.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		if booksvc.Code(err) == booksvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		}
		h.Log.Error("book detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, b)
}

// GET /v1/books
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("book list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/books/search?q=term
func (h *Controller) Search(c echo.Context) error {
	rows, err := h.Svc.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		h.Log.Error("book search", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/books/recent
func (h *Controller) Recent(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"data": h.Svc.RecentlyAdded()})
}

// PATCH /v1/books/:id/status
func (h *Controller) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	status, err := model.ParseBookStatus(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	if err := h.Svc.UpdateStatus(c.Request().Context(), id, status); err != nil {
		if booksvc.Code(err) == booksvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		}
		h.Log.Error("book status update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "status updated"})
}

// DELETE /v1/books/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if booksvc.Code(err) == booksvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		}
		h.Log.Error("book delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
