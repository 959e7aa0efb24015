package main

import (
	"github.com/hibiken/asynq"

	authorjob "bookcatalog-core/internal/domains/author/job"
	bookjob "bookcatalog-core/internal/domains/book/job"
	"bookcatalog-core/internal/events"
	"bookcatalog-core/pkg/container"
)

// HandlerRegistry holds all task handlers.
type HandlerRegistry struct {
	authorCreated *authorjob.CreatedHandler
	authorWelcome *authorjob.WelcomeHandler
	bookCreated   *bookjob.CreatedHandler
	reorderScan   *bookjob.ReorderScanHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		authorCreated: authorjob.NewCreatedHandler(c.Log),
		authorWelcome: authorjob.NewWelcomeHandler(c.AuthorRepo, c.Cache, c.Log),
		bookCreated:   bookjob.NewCreatedHandler(c.Log),
		reorderScan:   bookjob.NewReorderScanHandler(c.BookRepo, c.Config.Catalog.ReorderLeadTimeDays, c.Log),
	}
}

// RegisterHandlers binds each task type to its handler.
func (r *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.Handle(events.TypeAuthorCreated, r.authorCreated)
	mux.Handle(events.TypeAuthorWelcome, r.authorWelcome)
	mux.Handle(events.TypeBookCreated, r.bookCreated)
	mux.Handle(events.TypeReorderScan, r.reorderScan)
}
