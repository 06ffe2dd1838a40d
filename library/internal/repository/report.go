package repository

import (
	"context"
	"time"

	"github.com/Astemirdum/library-lending/library/internal/model"
)

const overdueQuery = `
select br.id as borrow_id, u.name as user_name, u.email, b.title as book_title, b.isbn, br.due_date
from borrows br
    join users u on u.id = br.user_id
    join books b on b.id = br.book_id
where br.return_date is null and br.due_date < $1
order by br.due_date, br.id`

func (r *repository) ListOverdue(ctx context.Context, now time.Time) ([]model.OverdueBorrow, error) {
	overdue, err := collectAll[model.OverdueBorrow](ctx, r.q, overdueQuery, []any{now})
	return overdue, mapErr(err, nil, "ListOverdue")
}
