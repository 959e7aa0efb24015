package usecase

import (
	"context"
	"errors"

	"bookcatalog-core/internal/domains/book"
	"bookcatalog-core/internal/domains/book/model"
	"bookcatalog-core/internal/domains/book/repository"
	"bookcatalog-core/pkg/logger"
)

// AdjustStockUseCase moves a book's stock counter up or down through
// the entity's own mutators, so stock invariants live in one place.
type AdjustStockUseCase struct {
	books repository.Repository
	log   logger.Logger
}

func NewAdjustStockUseCase(books repository.Repository, log logger.Logger) *AdjustStockUseCase {
	return &AdjustStockUseCase{books: books, log: log}
}

func (uc *AdjustStockUseCase) Execute(ctx context.Context, cmd book.AdjustStockCommand) book.AdjustStockResult {
	if err := cmd.Validate(); err != nil {
		return book.AdjustStockResult{Message: "validation failed", Errors: flattenValidationErrors(err)}
	}

	current, err := uc.books.FindByID(ctx, cmd.BookID)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return book.AdjustStockResult{Message: book.ErrBookNotFound.Error()}
		}
		uc.log.Error("adjust stock: lookup failed", err)
		return book.AdjustStockResult{Message: genericFailureMessage}
	}

	if cmd.Quantity > 0 {
		err = current.AddStock(cmd.Quantity)
	} else {
		err = current.RemoveStock(-cmd.Quantity)
	}
	if err != nil {
		if errors.Is(err, model.ErrInsufficientStock) {
			return book.AdjustStockResult{
				BookID:  &current.ID,
				Message: model.ErrInsufficientStock.Error(),
				Errors:  []string{model.ErrInsufficientStock.Error()},
			}
		}
		return book.AdjustStockResult{Message: "validation failed", Errors: []string{err.Error()}}
	}

	saved, err := uc.books.Save(ctx, current)
	if err != nil {
		uc.log.Error("adjust stock: save failed", err)
		return book.AdjustStockResult{Message: genericFailureMessage}
	}

	uc.log.Info("stock adjusted", map[string]interface{}{
		"book_id":        saved.ID.String(),
		"stock_quantity": saved.StockQuantity,
	})
	return book.AdjustStockResult{
		BookID:        &saved.ID,
		StockQuantity: &saved.StockQuantity,
		Success:       true,
		Message:       "stock adjusted",
	}
}
