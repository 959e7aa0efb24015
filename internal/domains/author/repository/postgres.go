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

	"bookcatalog-core/internal/domains/author"
	"bookcatalog-core/internal/domains/author/model"
	"bookcatalog-core/internal/shared/values"
	"bookcatalog-core/pkg/cache"
)

// postgresRepository implements Repository on pgxpool with a
// read-through cache in front of point lookups.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates a new author repository instance.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

const (
	authorCacheKeyPrefix = "author:"
	authorCacheTTL       = 15 * time.Minute
)

const authorColumns = `id, first_name, middle_name, last_name, email, bio, birth_date, nationality, is_active, created_at, updated_at`

// Save inserts on an unknown id and replaces the full record on a
// known one. The unique index on email is the real duplicate guard;
// its violation maps to author.ErrEmailTaken.
func (r *postgresRepository) Save(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (id, first_name, middle_name, last_name, email, bio, birth_date, nationality, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        ON CONFLICT (id) DO UPDATE SET
            first_name = EXCLUDED.first_name,
            middle_name = EXCLUDED.middle_name,
            last_name = EXCLUDED.last_name,
            email = EXCLUDED.email,
            bio = EXCLUDED.bio,
            birth_date = EXCLUDED.birth_date,
            nationality = EXCLUDED.nationality,
            is_active = EXCLUDED.is_active,
            updated_at = EXCLUDED.updated_at
    `

	var email *string
	if a.Email != nil {
		v := a.Email.String()
		email = &v
	}
	var middle *string
	if a.Name.Middle() != "" {
		v := a.Name.Middle()
		middle = &v
	}

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Name.First(),
		middle,
		a.Name.Last(),
		email,
		a.Bio,
		a.BirthDate,
		a.Nationality,
		a.IsActive,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "email") {
			return nil, author.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to save author: %w", err)
	}

	r.cache.Delete(ctx, authorCacheKeyPrefix+a.ID.String())

	saved := *a
	return &saved, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var cachedAuthor model.Author
	if found, err := r.cache.Get(ctx, cacheKey, &cachedAuthor); err == nil && found {
		return &cachedAuthor, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`
	a, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, cacheKey, a, authorCacheTTL)
	return a, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*model.Author, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	query := `SELECT ` + authorColumns + ` FROM authors WHERE email = $1`
	return scanAuthor(r.pool.QueryRow(ctx, query, email))
}

func (r *postgresRepository) Search(ctx context.Context, filter author.Filter) ([]model.Author, int64, error) {
	var where strings.Builder
	where.WriteString(" WHERE 1=1")

	args := []interface{}{}
	argPos := 1

	if q := strings.TrimSpace(filter.Query); q != "" {
		where.WriteString(fmt.Sprintf(" AND (first_name || ' ' || last_name) ILIKE $%d", argPos))
		args = append(args, "%"+escapeWildcards(q)+"%")
		argPos++
	}
	if filter.Nationality != "" {
		where.WriteString(fmt.Sprintf(" AND nationality ILIKE $%d", argPos))
		args = append(args, filter.Nationality)
		argPos++
	}
	if filter.IsActive != nil {
		where.WriteString(fmt.Sprintf(" AND is_active = $%d", argPos))
		args = append(args, *filter.IsActive)
		argPos++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM authors" + where.String()
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	query := "SELECT " + authorColumns + " FROM authors" + where.String() +
		fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", sortColumn(filter.SortBy), sortOrder(filter.Order), argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, 0, err
		}
		authors = append(authors, *a)
	}
	return authors, total, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}
	r.cache.Delete(ctx, authorCacheKeyPrefix+id.String())
	return nil
}

// scanAuthor rebuilds the entity from primitive columns. Stored rows
// passed construction once; a reconstruction failure means corrupt data.
func scanAuthor(row pgx.Row) (*model.Author, error) {
	var (
		a      model.Author
		first  string
		middle *string
		last   string
		email  *string
	)

	err := row.Scan(
		&a.ID,
		&first,
		&middle,
		&last,
		&email,
		&a.Bio,
		&a.BirthDate,
		&a.Nationality,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to scan author: %w", err)
	}

	mid := ""
	if middle != nil {
		mid = *middle
	}
	name, err := values.NewPersonName(first, mid, last)
	if err != nil {
		return nil, fmt.Errorf("corrupt author name for %s: %w", a.ID, err)
	}
	a.Name = name

	if email != nil {
		addr, err := values.NewEmailAddress(*email)
		if err != nil {
			return nil, fmt.Errorf("corrupt author email for %s: %w", a.ID, err)
		}
		a.Email = &addr
	}
	return &a, nil
}

// Whitelisted sort columns; anything else falls back to created_at.
func sortColumn(sortBy string) string {
	switch sortBy {
	case "name":
		return "last_name"
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

// escapeWildcards prevents user input from injecting ILIKE wildcards.
func escapeWildcards(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
