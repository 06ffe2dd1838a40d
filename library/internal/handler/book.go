package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-lending/library/internal/model"
)

// CreateBook godoc
// @Summary add a book
// @Tags books
// @Accept json
// @Produce json
// @Param book body model.CreateBookRequest true "all fields are required"
// @Success 201 {object} bookResponse
// @Failure 400 {object} errs.MessageResponse
// @Failure 500 {object} errs.ErrorResponse
// @Router /api/books [post]
func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	book, err := h.librarySvc.CreateBook(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, bookResponse{Message: msgBookAdded, Book: book})
}

// GetBook godoc
// @Summary get a book
// @Tags books
// @Produce json
// @Param id path int true "book id"
// @Success 200 {object} model.Book
// @Failure 400,404 {object} errs.MessageResponse
// @Router /api/books/{id} [get]
func (h *Handler) GetBook(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	book, err := h.librarySvc.GetBook(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

// UpdateBook godoc
// @Summary partially update a book
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "book id"
// @Param book body model.UpdateBookRequest true "fields to change"
// @Success 200 {object} bookResponse
// @Failure 400,404 {object} errs.MessageResponse
// @Router /api/books/{id} [put]
func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req model.UpdateBookRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	book, err := h.librarySvc.UpdateBook(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, bookResponse{Message: msgBookUpdated, Book: book})
}

// DeleteBook godoc
// @Summary delete a book that is not on loan
// @Tags books
// @Produce json
// @Param id path int true "book id"
// @Success 200 {object} messageResponse
// @Failure 400,404 {object} errs.MessageResponse
// @Router /api/books/{id} [delete]
func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err = h.librarySvc.DeleteBook(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msgBookDeleted})
}

// SearchBooks godoc
// @Summary search books by title, author or isbn
// @Tags books
// @Produce json
// @Param title query string false "title substring"
// @Param author query string false "author substring"
// @Param isbn query string false "isbn substring"
// @Success 200 {object} booksResponse
// @Failure 404 {object} errs.MessageResponse
// @Router /api/books/search [get]
func (h *Handler) SearchBooks(c echo.Context) error {
	q := model.SearchBooksQuery{
		Title:  c.QueryParam("title"),
		Author: c.QueryParam("author"),
		ISBN:   c.QueryParam("isbn"),
	}
	books, err := h.librarySvc.SearchBooks(c.Request().Context(), q)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, booksResponse{Books: books})
}

// ListBooks godoc
// @Summary list books page by page
// @Tags books
// @Produce json
// @Param page query int false "1-indexed page"
// @Param pageSize query int false "page size, default 10"
// @Success 200 {object} model.ListBooks
// @Failure 400 {object} errs.MessageResponse
// @Router /api/books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	size, err := queryInt(c, "pageSize")
	if err != nil {
		return err
	}
	books, err := h.librarySvc.ListBooks(c.Request().Context(), model.Pagination{Page: page, Size: size})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}
