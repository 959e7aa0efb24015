package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bookcatalog-core/internal/domains/author"
	authorrepo "bookcatalog-core/internal/domains/author/repository"
	authorusecase "bookcatalog-core/internal/domains/author/usecase"
	bookrepo "bookcatalog-core/internal/domains/book/repository"
	"bookcatalog-core/internal/domains/catalog/service"
	"bookcatalog-core/internal/events"
	"bookcatalog-core/pkg/cache"
	"bookcatalog-core/pkg/logger"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100

	dashboardCacheKeyPrefix = "dashboard:author:"
	dashboardCacheTTL       = 5 * time.Minute
	onboardingCacheTTL      = 24 * time.Hour
)

// CatalogService is the coarse-grained façade composed over the use
// cases. It adds cross-cutting behavior (onboarding side effects,
// batching, dashboard caching) but holds no business rules.
type CatalogService struct {
	createAuthor *authorusecase.CreateAuthorUseCase
	updateAuthor *authorusecase.UpdateAuthorUseCase
	authors      authorrepo.Repository
	books        bookrepo.Repository
	royalty      *service.RoyaltyCalculator
	events       events.Publisher
	cache        cache.Cache
	log          logger.Logger
}

func NewCatalogService(
	createAuthor *authorusecase.CreateAuthorUseCase,
	updateAuthor *authorusecase.UpdateAuthorUseCase,
	authors authorrepo.Repository,
	books bookrepo.Repository,
	royalty *service.RoyaltyCalculator,
	publisher events.Publisher,
	cache cache.Cache,
	log logger.Logger,
) *CatalogService {
	return &CatalogService{
		createAuthor: createAuthor,
		updateAuthor: updateAuthor,
		authors:      authors,
		books:        books,
		royalty:      royalty,
		events:       publisher,
		cache:        cache,
		log:          log,
	}
}

// RegisterAuthorWithOnboarding runs the create use case and, once the
// core creation has succeeded, triggers the welcome notification and
// warms the profile cache. Both side effects are best-effort: failures
// are logged and never turn the overall result into a failure.
func (s *CatalogService) RegisterAuthorWithOnboarding(ctx context.Context, cmd author.CreateAuthorCommand) author.CreateAuthorResult {
	result := s.createAuthor.Execute(ctx, cmd)
	if !result.Success || result.AuthorID == nil {
		return result
	}

	created, err := s.authors.FindByID(ctx, *result.AuthorID)
	if err != nil {
		s.log.Error("onboarding: reload created author failed", err)
		return result
	}

	payload := events.AuthorWelcomePayload{
		AuthorID: created.ID,
		FullName: created.Name.FullName(),
	}
	if created.Email != nil {
		payload.Email = created.Email.String()
	}
	if err := s.events.PublishAuthorWelcome(ctx, payload); err != nil {
		s.log.Error("onboarding: publish welcome failed", err)
	}

	if err := s.cache.Set(ctx, "author:"+created.ID.String(), created, onboardingCacheTTL); err != nil {
		s.log.Error("onboarding: cache warm failed", err)
	}

	return result
}

// BulkUpdateResult aggregates a batch of partial updates.
type BulkUpdateResult struct {
	SuccessCount int                `json:"success_count"`
	FailedCount  int                `json:"failed_count"`
	Failures     []BulkUpdateFailed `json:"failures,omitempty"`
}

// BulkUpdateFailed names one failed item and why it failed.
type BulkUpdateFailed struct {
	AuthorID uuid.UUID `json:"author_id"`
	Reason   string    `json:"reason"`
}

// BulkUpdateAuthors applies the updates sequentially. A failing item
// is recorded and the batch continues; the batch never aborts early.
func (s *CatalogService) BulkUpdateAuthors(ctx context.Context, cmds []author.UpdateAuthorCommand) BulkUpdateResult {
	var result BulkUpdateResult
	for _, cmd := range cmds {
		itemResult := s.updateAuthor.Execute(ctx, cmd)
		if itemResult.Success {
			result.SuccessCount++
			continue
		}
		result.FailedCount++
		result.Failures = append(result.Failures, BulkUpdateFailed{
			AuthorID: cmd.ID,
			Reason:   itemResult.Message,
		})
	}

	s.log.Info("bulk author update finished", map[string]interface{}{
		"success_count": result.SuccessCount,
		"failed_count":  result.FailedCount,
	})
	return result
}

// SearchResult pairs one page of authors with the unpaginated total.
type SearchResult struct {
	Authors []author.Summary `json:"authors"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// SearchAuthors normalizes pagination bounds and delegates to the
// repository port.
func (s *CatalogService) SearchAuthors(ctx context.Context, filter author.Filter) (*SearchResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultSearchLimit
	}
	if filter.Limit > maxSearchLimit {
		filter.Limit = maxSearchLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	found, total, err := s.authors.Search(ctx, filter)
	if err != nil {
		s.log.Error("search authors failed", err)
		return nil, err
	}

	summaries := make([]author.Summary, 0, len(found))
	for i := range found {
		summaries = append(summaries, author.NewSummary(&found[i]))
	}
	return &SearchResult{
		Authors: summaries,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}

// AuthorDashboard is a derived read model. It is cached read-through;
// the cache is never the source of truth and any cache failure falls
// back to recomputation.
type AuthorDashboard struct {
	AuthorID        uuid.UUID `json:"author_id"`
	FullName        string    `json:"full_name"`
	IsActive        bool      `json:"is_active"`
	TotalBooks      int       `json:"total_books"`
	PublishedBooks  int       `json:"published_books"`
	TotalUnitsSold  int       `json:"total_units_sold"`
	ProjectedEarned string    `json:"projected_earned"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// GetAuthorDashboard assembles the royalty and catalog summary for one
// author from the given sales figures.
func (s *CatalogService) GetAuthorDashboard(ctx context.Context, authorID uuid.UUID, salesByBookID map[uuid.UUID]int) (*AuthorDashboard, error) {
	cacheKey := dashboardCacheKeyPrefix + authorID.String()

	var cached AuthorDashboard
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	owner, err := s.authors.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	books, err := s.books.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	var rateOverride *decimal.Decimal
	earned, err := s.royalty.Calculate(owner, books, salesByBookID, rateOverride)
	if err != nil {
		return nil, err
	}

	dashboard := &AuthorDashboard{
		AuthorID:        owner.ID,
		FullName:        owner.Name.FullName(),
		IsActive:        owner.IsActive,
		TotalBooks:      len(books),
		ProjectedEarned: earned.String(),
		GeneratedAt:     time.Now().UTC(),
	}
	for _, b := range books {
		if b.IsPublished() {
			dashboard.PublishedBooks++
		}
		dashboard.TotalUnitsSold += salesByBookID[b.ID]
	}

	if err := s.cache.Set(ctx, cacheKey, dashboard, dashboardCacheTTL); err != nil {
		s.log.Error("dashboard: cache write failed", err)
	}
	return dashboard, nil
}
