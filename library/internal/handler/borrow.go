package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-lending/library/internal/model"
)

// BorrowBook godoc
// @Summary borrow a book for 14 days
// @Tags borrow
// @Accept json
// @Produce json
// @Param borrow body model.BorrowRequest true "who borrows what"
// @Success 200 {object} borrowResponse
// @Failure 400,404 {object} errs.MessageResponse
// @Failure 500 {object} errs.ErrorResponse
// @Router /api/borrow [post]
func (h *Handler) BorrowBook(c echo.Context) error {
	var req model.BorrowRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	borrow, err := h.librarySvc.BorrowBook(c.Request().Context(), req.UserID, req.BookID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, borrowResponse{Message: msgBookBorrowed, Borrow: borrow})
}

// ReturnBook godoc
// @Summary return a borrowed book
// @Tags borrow
// @Accept json
// @Produce json
// @Param return body model.ReturnRequest true "borrow to close"
// @Success 200 {object} borrowResponse
// @Failure 400,404 {object} errs.MessageResponse
// @Failure 500 {object} errs.ErrorResponse
// @Router /api/borrow/return [post]
func (h *Handler) ReturnBook(c echo.Context) error {
	var req model.ReturnRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	borrow, err := h.librarySvc.ReturnBook(c.Request().Context(), req.BorrowID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, borrowResponse{Message: msgBookReturned, Borrow: borrow})
}
