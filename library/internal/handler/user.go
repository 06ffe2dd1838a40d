package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-lending/library/internal/model"
)

// CreateUser godoc
// @Summary register a user
// @Tags users
// @Accept json
// @Produce json
// @Param user body model.CreateUserRequest true "email is required"
// @Success 201 {object} userResponse
// @Failure 400 {object} errs.MessageResponse
// @Router /api/users [post]
func (h *Handler) CreateUser(c echo.Context) error {
	var req model.CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.librarySvc.CreateUser(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, userResponse{Message: msgUserCreated, User: user})
}

// GetUser godoc
// @Summary get a user
// @Tags users
// @Produce json
// @Param id path int true "user id"
// @Success 200 {object} model.User
// @Failure 400,404 {object} errs.MessageResponse
// @Router /api/users/{id} [get]
func (h *Handler) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user, err := h.librarySvc.GetUser(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UserBorrows godoc
// @Summary borrows of a user, newest first
// @Tags users
// @Produce json
// @Param id path int true "user id"
// @Success 200 {object} borrowsResponse
// @Failure 400,404 {object} errs.MessageResponse
// @Router /api/users/{id}/borrows [get]
func (h *Handler) UserBorrows(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	borrows, err := h.librarySvc.UserBorrows(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, borrowsResponse{Borrows: borrows})
}

// UpdateUser godoc
// @Summary partially update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "user id"
// @Param user body model.UpdateUserRequest true "fields to change"
// @Success 200 {object} userResponse
// @Failure 400,404 {object} errs.MessageResponse
// @Router /api/users/{id} [put]
func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req model.UpdateUserRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	user, err := h.librarySvc.UpdateUser(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, userResponse{Message: msgUserUpdated, User: user})
}

// DeleteUser godoc
// @Summary delete a user and their borrows
// @Tags users
// @Produce json
// @Param id path int true "user id"
// @Success 200 {object} messageResponse
// @Failure 400,404 {object} errs.MessageResponse
// @Router /api/users/{id} [delete]
func (h *Handler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err = h.librarySvc.DeleteUser(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msgUserDeleted})
}

// ListUsers godoc
// @Summary list users page by page
// @Tags users
// @Produce json
// @Param page query int false "1-indexed page"
// @Param limit query int false "page size, default 10"
// @Success 200 {object} model.ListUsers
// @Failure 400 {object} errs.MessageResponse
// @Router /api/users [get]
func (h *Handler) ListUsers(c echo.Context) error {
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	users, err := h.librarySvc.ListUsers(c.Request().Context(), model.Pagination{Page: page, Size: limit})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}
