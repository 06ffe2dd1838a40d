package kafka

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookBorrowed EventType = "BOOK_BORROWED"
	EventBookReturned EventType = "BOOK_RETURNED"
)

type LendingEvent struct {
	EventID   uuid.UUID `json:"eventId"`
	EventType EventType `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
	BorrowID  int       `json:"borrowId"`
	UserID    int       `json:"userId"`
	BookID    int       `json:"bookId"`
	DueDate   time.Time `json:"dueDate"`
	LateDays  int       `json:"lateDays"`
}

func NewLendingEvent(eventType EventType, ts time.Time) LendingEvent {
	return LendingEvent{
		EventID:   uuid.New(),
		EventType: eventType,
		Timestamp: ts,
	}
}
