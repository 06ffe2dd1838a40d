package repository

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/errs"
	"github.com/Astemirdum/library-lending/library/internal/model"
)

func (r *repository) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	query, args, err := qb.Insert(booksTableName).
		Columns("title", "isbn", "publication_year", "rating", "copies", "authors", "image").
		Values(req.Title, req.ISBN, req.PublicationYear, req.Rating, req.Copies, req.Authors, req.Image).
		Suffix("returning " + strings.Join(bookColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	book, err := collectOne[model.Book](ctx, r.q, query, args)
	return book, mapErr(err, nil, "CreateBook")
}

func (r *repository) GetBook(ctx context.Context, id int) (model.Book, error) {
	return r.getBook(ctx, id, false)
}

func (s store) getBook(ctx context.Context, id int, forUpdate bool) (model.Book, error) {
	q := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id})
	if forUpdate {
		q = q.Suffix("for update")
	}
	query, args, err := q.ToSql()
	if err != nil {
		return model.Book{}, err
	}
	book, err := collectOne[model.Book](ctx, s.q, query, args)
	return book, mapErr(err, errs.ErrBookNotFound, "GetBook")
}

func (r *repository) UpdateBook(ctx context.Context, id int, req model.UpdateBookRequest) (model.Book, error) {
	set := make(map[string]interface{}, 8)
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.ISBN != nil {
		set["isbn"] = *req.ISBN
	}
	if req.PublicationYear != nil {
		set["publication_year"] = *req.PublicationYear
	}
	if req.Image != nil {
		set["image"] = *req.Image
	}
	if req.Rating != nil {
		set["rating"] = *req.Rating
	}
	if req.Copies != nil {
		set["copies"] = *req.Copies
	}
	if req.Authors != nil {
		set["authors"] = *req.Authors
	}
	if len(set) == 0 {
		return r.GetBook(ctx, id)
	}
	set["updated_at"] = sq.Expr("now()")

	query, args, err := qb.Update(booksTableName).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("returning " + strings.Join(bookColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	r.log.Debug("UpdateBook", zap.String("query", query), zap.Any("args", args))

	book, err := collectOne[model.Book](ctx, r.q, query, args)
	return book, mapErr(err, errs.ErrBookNotFound, "UpdateBook")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// SearchBooks matches any of the given criteria case-insensitively. Empty criteria match every book.
func (r *repository) SearchBooks(ctx context.Context, search model.SearchBooksQuery) ([]model.Book, error) {
	var or sq.Or
	if search.Title != "" {
		or = append(or, sq.ILike{"title": containsPattern(search.Title)})
	}
	if search.ISBN != "" {
		or = append(or, sq.ILike{"isbn": containsPattern(search.ISBN)})
	}
	if search.Author != "" {
		or = append(or, sq.ILike{"authors": containsPattern(search.Author)})
	}

	q := qb.Select(bookColumns...).From(booksTableName)
	if len(or) > 0 {
		q = q.Where(or)
	}
	query, args, err := q.OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("SearchBooks", zap.String("query", query), zap.Any("args", args))

	books, err := collectAll[model.Book](ctx, r.q, query, args)
	return books, mapErr(err, nil, "SearchBooks")
}

func (r *repository) ListBooks(ctx context.Context, p model.Pagination) ([]model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		OrderBy("id").
		Limit(uint64(p.Size)).
		Offset(uint64(p.Offset())).
		ToSql()
	if err != nil {
		return nil, err
	}
	books, err := collectAll[model.Book](ctx, r.q, query, args)
	return books, mapErr(err, nil, "ListBooks")
}

func (r *repository) CountBooks(ctx context.Context) (int, error) {
	n, err := r.count(ctx, booksTableName)
	return n, mapErr(err, nil, "CountBooks")
}
