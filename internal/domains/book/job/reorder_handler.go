package job

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookcatalog-core/internal/domains/book"
	"bookcatalog-core/internal/domains/book/repository"
	"bookcatalog-core/internal/domains/catalog/service"
	"bookcatalog-core/internal/events"
	"bookcatalog-core/pkg/logger"
)

// ReorderScanHandler walks the active catalog and flags books whose
// stock has fallen to their reorder point. Without recent sales data
// the reorder point bottoms out at the service's minimum buffer.
type ReorderScanHandler struct {
	books        repository.Repository
	leadTimeDays int
	log          logger.Logger
}

func NewReorderScanHandler(books repository.Repository, leadTimeDays int, log logger.Logger) *ReorderScanHandler {
	return &ReorderScanHandler{books: books, leadTimeDays: leadTimeDays, log: log}
}

func (h *ReorderScanHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload events.ReorderScanPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		h.log.Error("reorder scan: unmarshal payload failed", err)
		return err
	}
	if payload.Limit <= 0 {
		payload.Limit = 200
	}

	active := true
	found, total, err := h.books.Search(ctx, book.Filter{
		IsActive: &active,
		Limit:    payload.Limit,
		SortBy:   "created_at",
		Order:    "ASC",
	})
	if err != nil {
		h.log.Error("reorder scan: search failed", err)
		return err
	}

	flagged := 0
	for i := range found {
		b := &found[i]
		if !service.NeedsReorder(b, 0, h.leadTimeDays) {
			continue
		}
		flagged++
		log.Warn().
			Str("book_id", b.ID.String()).
			Str("title", b.Title.String()).
			Int("stock_quantity", b.StockQuantity).
			Msg("book at or below reorder point")
	}

	log.Info().
		Int("scanned", len(found)).
		Int64("total_active", total).
		Int("flagged", flagged).
		Msg("reorder scan finished")
	return nil
}

// CreatedHandler logs freshly persisted books for downstream feeds.
type CreatedHandler struct {
	log logger.Logger
}

func NewCreatedHandler(log logger.Logger) *CreatedHandler {
	return &CreatedHandler{log: log}
}

func (h *CreatedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload events.BookCreatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		h.log.Error("book created: unmarshal payload failed", err)
		return err
	}

	log.Info().
		Str("book_id", payload.BookID.String()).
		Str("author_id", payload.AuthorID.String()).
		Str("isbn", payload.ISBN).
		Msg("book created")
	return nil
}
