package transaction

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	ts "github.com/mawule-gabriel/TestingLibrary/service/transaction"
)

type Controller struct {
	Svc ts.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/transactions/borrow
func (h *Controller) Borrow(c echo.Context) error {
	var req BorrowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	id, ok, err := h.Svc.Borrow(c.Request().Context(), req.PatronID, req.BookID)
	if err != nil {
		switch ts.Code(err) {
		case ts.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		case ts.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("borrow", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"message": "book not available"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"transaction_id": id})
}

// POST /v1/transactions/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	t, err := h.Svc.Return(c.Request().Context(), id)
	if err != nil {
		switch ts.Code(err) {
		case ts.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		case ts.ErrAlreadyReturned:
			return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
		case ts.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("return", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, t)
}

// POST /v1/transactions
func (h *Controller) Create(c echo.Context) error {
	var req CreateTransactionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	t, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	id, err := h.Svc.Add(c.Request().Context(), t)
	if err != nil {
		switch ts.Code(err) {
		case ts.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		case ts.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("transaction create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"transaction_id": id})
}

// GET /v1/transactions
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("transaction list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// DELETE /v1/transactions/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		switch ts.Code(err) {
		case ts.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		case ts.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("transaction delete", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
