package model

type CreateBookRequest struct {
	Title           *string  `json:"title" validate:"required,max=255"`
	ISBN            *string  `json:"isbn" validate:"required,max=32"`
	PublicationYear *int     `json:"publicationYear" validate:"required"`
	Image           *string  `json:"image" validate:"required,max=1024"`
	Rating          *float64 `json:"rating" validate:"required,gte=0,lte=5"`
	Copies          *int     `json:"copies" validate:"required,gte=0"`
	Authors         *string  `json:"authors" validate:"required"`
}

// UpdateBookRequest is a partial update: nil fields are left untouched.
type UpdateBookRequest struct {
	Title           *string  `json:"title" validate:"omitempty,max=255"`
	ISBN            *string  `json:"isbn" validate:"omitempty,max=32"`
	PublicationYear *int     `json:"publicationYear"`
	Image           *string  `json:"image" validate:"omitempty,max=1024"`
	Rating          *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Copies          *int     `json:"copies" validate:"omitempty,gte=0"`
	Authors         *string  `json:"authors"`
}

func (r UpdateBookRequest) Empty() bool {
	return r.Title == nil && r.ISBN == nil && r.PublicationYear == nil && r.Image == nil &&
		r.Rating == nil && r.Copies == nil && r.Authors == nil
}

type SearchBooksQuery struct {
	Title  string `query:"title"`
	Author string `query:"author"`
	ISBN   string `query:"isbn"`
}

func (q SearchBooksQuery) Empty() bool {
	return q.Title == "" && q.Author == "" && q.ISBN == ""
}

type CreateUserRequest struct {
	Name  string `json:"name" validate:"max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=255"`
	Email *string `json:"email" validate:"omitempty,email,max=255"`
}

func (r UpdateUserRequest) Empty() bool {
	return r.Name == nil && r.Email == nil
}

type BorrowRequest struct {
	UserID int `json:"userId" validate:"required,gt=0"`
	BookID int `json:"bookId" validate:"required,gt=0"`
}

type ReturnRequest struct {
	BorrowID int `json:"borrowId" validate:"required,gt=0"`
}

type Pagination struct {
	Page int
	Size int
}

// Normalize applies defaults: page 1, size DefaultPageSize capped at MaxPageSize.
// Page is capped at MaxPage so Offset cannot overflow.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Size
}
