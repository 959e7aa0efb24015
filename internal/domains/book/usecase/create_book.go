package usecase

import (
	"context"
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookcatalog-core/internal/domains/author"
	authorrepo "bookcatalog-core/internal/domains/author/repository"
	"bookcatalog-core/internal/domains/book"
	"bookcatalog-core/internal/domains/book/model"
	"bookcatalog-core/internal/domains/book/repository"
	"bookcatalog-core/internal/domains/catalog/service"
	"bookcatalog-core/internal/events"
	"bookcatalog-core/internal/shared/values"
	"bookcatalog-core/pkg/logger"
)

const genericFailureMessage = "an unexpected error occurred"

// CreateBookUseCase orchestrates one book creation: validate input,
// resolve the owning author, reject duplicate ISBNs, apply the publish
// pacing policy when a publication date is given, persist, and emit
// the created event.
type CreateBookUseCase struct {
	books   repository.Repository
	authors authorrepo.Repository
	policy  service.PublishPolicy
	events  events.Publisher
	log     logger.Logger
}

func NewCreateBookUseCase(books repository.Repository, authors authorrepo.Repository, policy service.PublishPolicy, events events.Publisher, log logger.Logger) *CreateBookUseCase {
	return &CreateBookUseCase{books: books, authors: authors, policy: policy, events: events, log: log}
}

func (uc *CreateBookUseCase) Execute(ctx context.Context, cmd book.CreateBookCommand) book.CreateBookResult {
	if err := cmd.Validate(); err != nil {
		return book.CreateBookResult{Message: "validation failed", Errors: flattenValidationErrors(err)}
	}

	title, err := values.NewBookTitle(cmd.Title)
	if err != nil {
		return book.CreateBookResult{Message: "validation failed", Errors: []string{err.Error()}}
	}
	isbn, err := values.NewISBN(cmd.ISBN)
	if err != nil {
		return book.CreateBookResult{Message: "validation failed", Errors: []string{err.Error()}}
	}
	price, err := values.NewMoneyFromString(cmd.Price, cmd.Currency)
	if err != nil {
		return book.CreateBookResult{Message: "validation failed", Errors: []string{err.Error()}}
	}

	owner, err := uc.authors.FindByID(ctx, cmd.AuthorID)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return book.CreateBookResult{Message: author.ErrAuthorNotFound.Error(), Errors: []string{author.ErrAuthorNotFound.Error()}}
		}
		uc.log.Error("create book: author lookup failed", err)
		return book.CreateBookResult{Message: genericFailureMessage}
	}
	if !owner.IsActive {
		return book.CreateBookResult{Message: author.ErrAuthorInactive.Error(), Errors: []string{author.ErrAuthorInactive.Error()}}
	}

	// Check-then-act duplicate guard; the adapter's unique constraint
	// is the actual guard and Save maps its violation to ErrISBNTaken.
	_, err = uc.books.FindByISBN(ctx, isbn.String())
	switch {
	case err == nil:
		return book.CreateBookResult{Message: book.ErrISBNTaken.Error(), Errors: []string{book.ErrISBNTaken.Error()}}
	case errors.Is(err, book.ErrBookNotFound):
		// Free to use.
	default:
		uc.log.Error("create book: isbn lookup failed", err)
		return book.CreateBookResult{Message: genericFailureMessage}
	}

	if cmd.PublicationDate != nil {
		existing, err := uc.books.ListByAuthor(ctx, owner.ID)
		if err != nil {
			uc.log.Error("create book: list author books failed", err)
			return book.CreateBookResult{Message: genericFailureMessage}
		}
		if ok, reason := uc.policy.Check(owner, existing, cmd.PublicationDate); !ok {
			return book.CreateBookResult{Message: reason, Errors: []string{reason}}
		}
	}

	newBook, err := model.NewBook(title, isbn, owner.ID, price, model.NewBookParams{
		PublicationDate: cmd.PublicationDate,
		Pages:           cmd.Pages,
		Genre:           cmd.Genre,
		InitialStock:    cmd.InitialStock,
	})
	if err != nil {
		return book.CreateBookResult{Message: "validation failed", Errors: []string{err.Error()}}
	}

	saved, err := uc.books.Save(ctx, newBook)
	if err != nil {
		if errors.Is(err, book.ErrISBNTaken) {
			return book.CreateBookResult{Message: book.ErrISBNTaken.Error(), Errors: []string{book.ErrISBNTaken.Error()}}
		}
		uc.log.Error("create book: save failed", err)
		return book.CreateBookResult{Message: genericFailureMessage}
	}

	// Fire-and-forget: a publish failure is logged, never rolled back.
	if err := uc.events.PublishBookCreated(ctx, events.BookCreatedPayload{
		BookID:   saved.ID,
		AuthorID: saved.AuthorID,
		Title:    saved.Title.String(),
		ISBN:     saved.ISBN.String(),
	}); err != nil {
		uc.log.Error("create book: publish event failed", err)
	}

	uc.log.Info("book created", map[string]interface{}{"book_id": saved.ID.String()})
	return book.CreateBookResult{
		BookID:  &saved.ID,
		Success: true,
		Message: "book created",
	}
}

func flattenValidationErrors(err error) []string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for field, ferr := range verrs {
		msgs = append(msgs, field+": "+ferr.Error())
	}
	sort.Strings(msgs)
	return msgs
}
