package errs

import (
	"errors"
)

// Kinds. Handlers map them to status codes; concrete errors below unwrap to one of these.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
)

var (
	ErrBookNotFound     = New(ErrNotFound, "Book not found")
	ErrUserNotFound     = New(ErrNotFound, "User not found")
	ErrBorrowNotFound   = New(ErrNotFound, "Borrow record not found")
	ErrNoBooksFound     = New(ErrNotFound, "No books found matching the criteria")
	ErrBookNotAvailable = New(ErrInvalidState, "Book is not available")
	ErrBookBorrowed     = New(ErrInvalidState, "Cannot delete book. It is currently borrowed.")
	ErrAlreadyReturned  = New(ErrInvalidState, "Book already returned")
	ErrDuplicateISBN    = New(ErrValidation, "isbn already exists")
	ErrDuplicateEmail   = New(ErrValidation, "email already in use")
)

type Error struct {
	kind error
	msg  string
}

func New(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func Validation(msg string) *Error {
	return New(ErrValidation, msg)
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
