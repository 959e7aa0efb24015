package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"bookcatalog-core/internal/domains/book"
	"bookcatalog-core/internal/domains/book/model"
	"bookcatalog-core/internal/shared/values"
	"bookcatalog-core/pkg/cache"
)

// postgresRepository implements Repository on pgxpool with a
// read-through cache in front of point lookups.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates a new book repository instance.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

const (
	bookCacheKeyPrefix = "book:"
	bookCacheTTL       = 15 * time.Minute
)

const bookColumns = `id, title, isbn, author_id, publication_date, pages, genre, price_amount, price_currency, stock_quantity, is_active, created_at, updated_at`

// Save inserts on an unknown id and replaces the full record on a
// known one. The unique index on isbn maps to book.ErrISBNTaken.
func (r *postgresRepository) Save(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        INSERT INTO books (id, title, isbn, author_id, publication_date, pages, genre, price_amount, price_currency, stock_quantity, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        ON CONFLICT (id) DO UPDATE SET
            title = EXCLUDED.title,
            isbn = EXCLUDED.isbn,
            author_id = EXCLUDED.author_id,
            publication_date = EXCLUDED.publication_date,
            pages = EXCLUDED.pages,
            genre = EXCLUDED.genre,
            price_amount = EXCLUDED.price_amount,
            price_currency = EXCLUDED.price_currency,
            stock_quantity = EXCLUDED.stock_quantity,
            is_active = EXCLUDED.is_active,
            updated_at = EXCLUDED.updated_at
    `

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Title.String(),
		b.ISBN.String(),
		b.AuthorID,
		b.PublicationDate,
		b.Pages,
		b.Genre,
		b.Price.Amount(),
		b.Price.Currency(),
		b.StockQuantity,
		b.IsActive,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "isbn") {
			return nil, book.ErrISBNTaken
		}
		return nil, fmt.Errorf("failed to save book: %w", err)
	}

	r.cache.Delete(ctx, bookCacheKeyPrefix+b.ID.String())

	saved := *b
	return &saved, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var cachedBook model.Book
	if found, err := r.cache.Get(ctx, cacheKey, &cachedBook); err == nil && found {
		return &cachedBook, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	b, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, cacheKey, b, bookCacheTTL)
	return b, nil
}

func (r *postgresRepository) FindByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1`
	return scanBook(r.pool.QueryRow(ctx, query, strings.TrimSpace(isbn)))
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE author_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books by author: %w", err)
	}
	defer rows.Close()

	var books []*model.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *postgresRepository) Search(ctx context.Context, filter book.Filter) ([]model.Book, int64, error) {
	var where strings.Builder
	where.WriteString(" WHERE 1=1")

	args := []interface{}{}
	argPos := 1

	if q := strings.TrimSpace(filter.Query); q != "" {
		where.WriteString(fmt.Sprintf(" AND title ILIKE $%d", argPos))
		args = append(args, "%"+escapeWildcards(q)+"%")
		argPos++
	}
	if filter.AuthorID != nil {
		where.WriteString(fmt.Sprintf(" AND author_id = $%d", argPos))
		args = append(args, *filter.AuthorID)
		argPos++
	}
	if filter.Genre != "" {
		where.WriteString(fmt.Sprintf(" AND genre ILIKE $%d", argPos))
		args = append(args, filter.Genre)
		argPos++
	}
	if filter.IsActive != nil {
		where.WriteString(fmt.Sprintf(" AND is_active = $%d", argPos))
		args = append(args, *filter.IsActive)
		argPos++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM books" + where.String()
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	query := "SELECT " + bookColumns + " FROM books" + where.String() +
		fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", sortColumn(filter.SortBy), sortOrder(filter.Order), argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		books = append(books, *b)
	}
	return books, total, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}
	r.cache.Delete(ctx, bookCacheKeyPrefix+id.String())
	return nil
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var (
		b        model.Book
		title    string
		isbn     string
		amount   decimal.Decimal
		currency string
	)

	err := row.Scan(
		&b.ID,
		&title,
		&isbn,
		&b.AuthorID,
		&b.PublicationDate,
		&b.Pages,
		&b.Genre,
		&amount,
		&currency,
		&b.StockQuantity,
		&b.IsActive,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to scan book: %w", err)
	}

	bookTitle, err := values.NewBookTitle(title)
	if err != nil {
		return nil, fmt.Errorf("corrupt book title for %s: %w", b.ID, err)
	}
	b.Title = bookTitle

	bookISBN, err := values.NewISBN(isbn)
	if err != nil {
		return nil, fmt.Errorf("corrupt book isbn for %s: %w", b.ID, err)
	}
	b.ISBN = bookISBN

	price, err := values.NewMoney(amount, currency)
	if err != nil {
		return nil, fmt.Errorf("corrupt book price for %s: %w", b.ID, err)
	}
	b.Price = price

	return &b, nil
}

func sortColumn(sortBy string) string {
	switch sortBy {
	case "title":
		return "title"
	case "updated_at":
		return "updated_at"
	default:
		return "created_at"
	}
}

func sortOrder(order string) string {
	if strings.EqualFold(order, "ASC") {
		return "ASC"
	}
	return "DESC"
}

func escapeWildcards(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
