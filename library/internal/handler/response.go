package handler

import (
	"github.com/Astemirdum/library-lending/library/internal/model"
)

const (
	msgBookAdded    = "Book added successfully"
	msgBookUpdated  = "Book updated successfully"
	msgBookDeleted  = "Book deleted successfully"
	msgUserCreated  = "User created successfully"
	msgUserUpdated  = "User updated successfully"
	msgUserDeleted  = "User deleted successfully"
	msgBookBorrowed = "Book borrowed successfully"
	msgBookReturned = "Book returned successfully"
)

type messageResponse struct {
	Message string `json:"message"`
}

type bookResponse struct {
	Message string     `json:"message"`
	Book    model.Book `json:"book"`
}

type booksResponse struct {
	Books []model.Book `json:"books"`
}

type userResponse struct {
	Message string     `json:"message"`
	User    model.User `json:"user"`
}

type borrowResponse struct {
	Message string       `json:"message"`
	Borrow  model.Borrow `json:"borrow"`
}

type borrowsResponse struct {
	Borrows []model.Borrow `json:"borrows"`
}
