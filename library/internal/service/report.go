package service

import (
	"context"

	"github.com/Astemirdum/library-lending/library/internal/model"
)

// OverdueReport lists open borrows whose due date has passed, oldest due date first.
func (s *Service) OverdueReport(ctx context.Context) (model.OverdueReport, error) {
	now := s.clock.Now()
	rows, err := s.repo.ListOverdue(ctx, now)
	if err != nil {
		return model.OverdueReport{}, err
	}
	details := make([]model.OverdueDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, model.OverdueDetail{
			BorrowID:    row.BorrowID,
			User:        row.UserName,
			Email:       row.Email,
			BookTitle:   row.BookTitle,
			ISBN:        row.ISBN,
			DueDate:     row.DueDate,
			OverdueDays: model.DaysOverdue(row.DueDate, now),
		})
	}
	return model.OverdueReport{OverdueDetails: details}, nil
}
