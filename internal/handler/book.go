package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/bookorg/bookstore-service/internal/model"
)

func (h *Handler) GetBooks(c echo.Context) error {
	ctx := c.Request().Context()

	author := c.QueryParam("author")
	title := c.QueryParam("title")

	var (
		err         error
		bookstoreID *int64
		page        int
		size        = 20
	)
	if raw := c.QueryParam("bookstoreId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "bookstoreId is invalid")
		}
		bookstoreID = &id
	}
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if page, err = strconv.Atoi(pageParam); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "page is invalid")
		}
	}
	if sizeParam := c.QueryParam("size"); sizeParam != "" {
		if size, err = strconv.Atoi(sizeParam); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "size is invalid")
		}
	}

	books, err := h.bookSvc.List(ctx, author, title, bookstoreID, page, size)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, model.PageResponse{
		Response: model.Response{
			StatusCode:    http.StatusOK,
			StatusMessage: http.StatusText(http.StatusOK),
			Response:      books.Items,
		},
		PageSize:      books.Size,
		TotalPages:    books.TotalPages,
		CurrentPage:   books.Page,
		TotalElements: books.TotalElements,
	})
}

func (h *Handler) CreateBook(c echo.Context) error {
	var book model.Book
	if err := c.Bind(&book); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&book); err != nil {
		return err
	}

	id, err := h.bookSvc.Create(c.Request().Context(), book)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, http.StatusOK, id)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	var book model.Book
	if err := c.Bind(&book); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&book); err != nil {
		return err
	}

	id, err := h.bookSvc.Update(c.Request().Context(), book)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, http.StatusOK, id)
}

func (h *Handler) GetBook(c echo.Context) error {
	id, err := uuid.Parse(c.Param("isbn"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isbn is invalid")
	}

	book, err := h.bookSvc.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, http.StatusOK, book)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := uuid.Parse(c.Param("isbn"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isbn is invalid")
	}

	if err := h.bookSvc.Delete(c.Request().Context(), id); err != nil {
		return respondErr(c, err)
	}
	return respond(c, http.StatusOK, nil)
}
