package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookorg/bookstore-service/internal/model"
)

func (h *Handler) Login(c echo.Context) error {
	var req model.AuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.authSvc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, http.StatusOK, model.AuthResponse{Token: token})
}

func (h *Handler) Register(c echo.Context) error {
	var req model.AuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.authSvc.Register(c.Request().Context(), req.Username, req.Password, model.RoleUser); err != nil {
		return respondErr(c, err)
	}
	return respond(c, http.StatusCreated, "User registered successfully")
}
