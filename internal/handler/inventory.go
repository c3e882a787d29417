package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/bookorg/bookstore-service/internal/model"
)

func (h *Handler) GetInventoryByIsbn(c echo.Context) error {
	id, err := uuid.Parse(c.Param("isbn"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isbn is invalid")
	}

	items, err := h.inventorySvc.GetByBookID(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, http.StatusOK, items)
}

func (h *Handler) GetInventoryByAuthor(c echo.Context) error {
	author := c.Param("author")
	if author == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "author is required")
	}

	totals, err := h.inventorySvc.CopiesByAuthor(c.Request().Context(), author)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, http.StatusOK, totals)
}

func (h *Handler) GetInventoryByTitle(c echo.Context) error {
	title := c.Param("title")
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	totals, err := h.inventorySvc.CopiesByTitle(c.Request().Context(), title)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, http.StatusOK, totals)
}

func (h *Handler) UpdateInventory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("isbn"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isbn is invalid")
	}
	copies, err := strconv.Atoi(c.QueryParam("copies"))
	if err != nil || copies < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "copies is invalid")
	}
	bookstoreID, err := strconv.ParseInt(c.QueryParam("bookstore_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bookstore_id is invalid")
	}

	updatedID, err := h.inventorySvc.UpdateInventory(c.Request().Context(), id, copies, bookstoreID)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, http.StatusOK, updatedID)
}

func (h *Handler) GetTotalCopies(c echo.Context) error {
	total, err := h.inventorySvc.TotalCopies(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, http.StatusOK, model.InventoryGlobal{TotalCopies: total})
}
