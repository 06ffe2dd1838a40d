package model

import (
	"time"
)

const (
	LoanPeriod = 14 * 24 * time.Hour
	day        = 24 * time.Hour

	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxPage         = 1_000_000
)

// DaysOverdue returns the whole days elapsed since due, zero when due has not passed.
func DaysOverdue(due, now time.Time) int {
	if !now.After(due) {
		return 0
	}
	return int(now.Sub(due) / day)
}

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
}

type ListBooks struct {
	Paging `json:",inline"`
	Books  []Book `json:"books"`
}

type ListUsers struct {
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalUsers int    `json:"totalUsers"`
	TotalPages int    `json:"totalPages"`
	Users      []User `json:"users"`
}

type Book struct {
	ID              int       `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	ISBN            *string   `json:"isbn" db:"isbn"`
	PublicationYear *int      `json:"publicationYear" db:"publication_year"`
	Rating          *float64  `json:"rating" db:"rating"`
	Copies          int       `json:"copies" db:"copies"`
	Authors         string    `json:"authors" db:"authors"`
	Image           *string   `json:"image" db:"image"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

type User struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type Borrow struct {
	ID         int        `json:"id" db:"id"`
	UserID     int        `json:"userId" db:"user_id"`
	BookID     int        `json:"bookId" db:"book_id"`
	BorrowDate time.Time  `json:"borrowDate" db:"borrow_date"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate *time.Time `json:"returnDate" db:"return_date"`
	LateDays   int        `json:"lateDays" db:"late_days"`
}

func (b Borrow) IsOpen() bool {
	return b.ReturnDate == nil
}

// OverdueBorrow is an open past-due borrow joined with its user and book.
type OverdueBorrow struct {
	BorrowID  int       `db:"borrow_id"`
	UserName  string    `db:"user_name"`
	Email     string    `db:"email"`
	BookTitle string    `db:"book_title"`
	ISBN      *string   `db:"isbn"`
	DueDate   time.Time `db:"due_date"`
}

type OverdueDetail struct {
	BorrowID    int       `json:"borrowId"`
	User        string    `json:"user"`
	Email       string    `json:"email"`
	BookTitle   string    `json:"bookTitle"`
	ISBN        *string   `json:"isbn"`
	DueDate     time.Time `json:"dueDate"`
	OverdueDays int       `json:"overdueDays"`
}

type OverdueReport struct {
	OverdueDetails []OverdueDetail `json:"overdueDetails"`
}
