package usecase

import (
	"context"
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookcatalog-core/internal/domains/author"
	"bookcatalog-core/internal/domains/author/model"
	"bookcatalog-core/internal/domains/author/repository"
	"bookcatalog-core/internal/events"
	"bookcatalog-core/internal/shared/values"
	"bookcatalog-core/pkg/logger"
)

// genericFailureMessage is what callers see when something unexpected
// breaks; adapter internals never leak past the use-case boundary.
const genericFailureMessage = "an unexpected error occurred"

// CreateAuthorUseCase orchestrates one author registration: validate
// input, reject duplicate emails, build the entity, persist it, and
// emit the created event. It holds no business rules of its own.
type CreateAuthorUseCase struct {
	repo   repository.Repository
	events events.Publisher
	log    logger.Logger
}

func NewCreateAuthorUseCase(repo repository.Repository, events events.Publisher, log logger.Logger) *CreateAuthorUseCase {
	return &CreateAuthorUseCase{repo: repo, events: events, log: log}
}

func (uc *CreateAuthorUseCase) Execute(ctx context.Context, cmd author.CreateAuthorCommand) author.CreateAuthorResult {
	if err := cmd.Validate(); err != nil {
		return author.CreateAuthorResult{Message: "validation failed", Errors: flattenValidationErrors(err)}
	}

	name, err := values.NewPersonName(cmd.FirstName, cmd.MiddleName, cmd.LastName)
	if err != nil {
		return author.CreateAuthorResult{Message: "validation failed", Errors: []string{err.Error()}}
	}

	var email *values.EmailAddress
	if cmd.Email != "" {
		addr, err := values.NewEmailAddress(cmd.Email)
		if err != nil {
			return author.CreateAuthorResult{Message: "validation failed", Errors: []string{err.Error()}}
		}
		email = &addr

		// Check-then-act duplicate guard. Not transactional against
		// concurrent creates; the adapter's unique constraint is the
		// actual guard and Save maps its violation to ErrEmailTaken.
		_, err = uc.repo.FindByEmail(ctx, addr.String())
		switch {
		case err == nil:
			return author.CreateAuthorResult{Message: author.ErrEmailTaken.Error(), Errors: []string{author.ErrEmailTaken.Error()}}
		case errors.Is(err, author.ErrAuthorNotFound):
			// Free to use.
		default:
			uc.log.Error("create author: email lookup failed", err)
			return author.CreateAuthorResult{Message: genericFailureMessage}
		}
	}

	newAuthor, err := model.NewAuthor(name, email, cmd.Bio, cmd.BirthDate, cmd.Nationality)
	if err != nil {
		return author.CreateAuthorResult{Message: "validation failed", Errors: []string{err.Error()}}
	}

	saved, err := uc.repo.Save(ctx, newAuthor)
	if err != nil {
		if errors.Is(err, author.ErrEmailTaken) {
			return author.CreateAuthorResult{Message: author.ErrEmailTaken.Error(), Errors: []string{author.ErrEmailTaken.Error()}}
		}
		uc.log.Error("create author: save failed", err)
		return author.CreateAuthorResult{Message: genericFailureMessage}
	}

	// Fire-and-forget: a publish failure is logged, never rolled back.
	payload := events.AuthorCreatedPayload{
		AuthorID:  saved.ID,
		FullName:  saved.Name.FullName(),
		CreatedAt: saved.CreatedAt,
	}
	if saved.Email != nil {
		payload.Email = saved.Email.String()
	}
	if err := uc.events.PublishAuthorCreated(ctx, payload); err != nil {
		uc.log.Error("create author: publish event failed", err)
	}

	uc.log.Info("author created", map[string]interface{}{"author_id": saved.ID.String()})
	return author.CreateAuthorResult{
		AuthorID: &saved.ID,
		Success:  true,
		Message:  "author created",
	}
}

// flattenValidationErrors turns an ozzo error map into a stable,
// field-prefixed message list.
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
