package container

import (
	"context"
	"fmt"

	"bookcatalog-core/internal/application"
	"bookcatalog-core/internal/config"
	authorrepo "bookcatalog-core/internal/domains/author/repository"
	authorusecase "bookcatalog-core/internal/domains/author/usecase"
	bookrepo "bookcatalog-core/internal/domains/book/repository"
	bookusecase "bookcatalog-core/internal/domains/book/usecase"
	"bookcatalog-core/internal/domains/catalog/service"
	"bookcatalog-core/internal/events"
	infracache "bookcatalog-core/internal/infrastructure/cache"
	"bookcatalog-core/internal/infrastructure/database"
	"bookcatalog-core/internal/infrastructure/queue"
	"bookcatalog-core/pkg/cache"
	"bookcatalog-core/pkg/logger"
)

// Container is the root of the dependency graph. Initialization order
// is config, infrastructure, repositories, domain services, use cases,
// application facade.
type Container struct {
	Config    *config.Config
	Log       logger.Logger
	DB        *database.PostgresDB
	Redis     *infracache.RedisClient
	Cache     cache.Cache
	Publisher *queue.Publisher

	AuthorRepo authorrepo.Repository
	BookRepo   bookrepo.Repository

	Royalty   *service.RoyaltyCalculator
	Publish   service.PublishPolicy
	Suggester *service.PriceSuggester

	CreateAuthor *authorusecase.CreateAuthorUseCase
	UpdateAuthor *authorusecase.UpdateAuthorUseCase
	CreateBook   *bookusecase.CreateBookUseCase
	AdjustStock  *bookusecase.AdjustStockUseCase

	Catalog *application.CatalogService
}

func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)
	c.Log = logger.New()

	c.DB = database.NewPostgresDB(cfg.DatabasePoolConfig(), c.Log)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	c.Redis = infracache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("failed to connect redis: %w", err)
	}
	c.Cache = infracache.NewRedisCache(c.Redis)

	c.Publisher = queue.NewPublisher(cfg.Redis.Addr)

	c.AuthorRepo = authorrepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.BookRepo = bookrepo.NewPostgresRepository(c.DB.Pool, c.Cache)

	c.Royalty = service.NewRoyaltyCalculator(service.RoyaltyConfig{
		BaseRate:            cfg.Catalog.RoyaltyBaseRate,
		BestsellerBonus:     cfg.Catalog.RoyaltyBestsellerBonus,
		BestsellerThreshold: cfg.Catalog.BestsellerThreshold,
		MaxRate:             cfg.Catalog.RoyaltyMaxRate,
		DefaultCurrency:     cfg.Catalog.DefaultCurrency,
	})
	c.Publish = service.PublishPolicy{
		MaxPerYear:     cfg.Catalog.PublishMaxPerYear,
		CooldownDays:   cfg.Catalog.PublishCooldownDays,
		MaxUnpublished: cfg.Catalog.PublishMaxUnpublished,
	}
	pricing := service.DefaultPricingConfig()
	pricing.BasePrice = cfg.Catalog.BaseBookPrice
	pricing.Currency = cfg.Catalog.DefaultCurrency
	c.Suggester = service.NewPriceSuggester(pricing)

	c.CreateAuthor = authorusecase.NewCreateAuthorUseCase(c.AuthorRepo, c.Publisher, c.Log)
	c.UpdateAuthor = authorusecase.NewUpdateAuthorUseCase(c.AuthorRepo, c.Log)
	c.CreateBook = bookusecase.NewCreateBookUseCase(c.BookRepo, c.AuthorRepo, c.Publish, c.Publisher, c.Log)
	c.AdjustStock = bookusecase.NewAdjustStockUseCase(c.BookRepo, c.Log)

	c.Catalog = application.NewCatalogService(
		c.CreateAuthor, c.UpdateAuthor,
		c.AuthorRepo, c.BookRepo,
		c.Royalty, c.Publisher, c.Cache, c.Log,
	)

	return c, nil
}

// Publisher must satisfy the event port.
var _ events.Publisher = (*queue.Publisher)(nil)

// Shutdown releases all held connections.
func (c *Container) Shutdown() {
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			c.Log.Error("closing queue client failed", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Error("closing redis failed", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
