package model_test

import (
	"math"
	"testing"
	"time"

	"github.com/Astemirdum/library-lending/library/internal/model"
	"github.com/stretchr/testify/require"
)

func TestDaysOverdue(t *testing.T) {
	due := time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "before due", now: due.Add(-time.Hour), want: 0},
		{name: "exactly due", now: due, want: 0},
		{name: "less than a day late", now: due.Add(23 * time.Hour), want: 0},
		{name: "one day late", now: due.Add(24 * time.Hour), want: 1},
		{name: "twenty days and change", now: due.AddDate(0, 0, 20).Add(5 * time.Hour), want: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, model.DaysOverdue(due, tt.now))
		})
	}
}

func TestPagination_Normalize(t *testing.T) {
	require.Equal(t, model.Pagination{Page: 1, Size: 10}, model.Pagination{}.Normalize())
	require.Equal(t, model.Pagination{Page: 3, Size: 100}, model.Pagination{Page: 3, Size: 500}.Normalize())
	require.Equal(t, 40, model.Pagination{Page: 3, Size: 20}.Offset())

	huge := model.Pagination{Page: math.MaxInt64, Size: 10}.Normalize()
	require.Equal(t, model.MaxPage, huge.Page)
	require.Positive(t, huge.Offset())
}

func TestBorrow_IsOpen(t *testing.T) {
	now := time.Now()
	require.True(t, model.Borrow{}.IsOpen())
	require.False(t, model.Borrow{ReturnDate: &now}.IsOpen())
}
