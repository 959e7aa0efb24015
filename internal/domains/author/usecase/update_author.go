package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"bookcatalog-core/internal/domains/author"
	"bookcatalog-core/internal/domains/author/repository"
	"bookcatalog-core/internal/shared/values"
	"bookcatalog-core/pkg/logger"
)

// UpdateAuthorUseCase applies a partial update to one author. The
// result message distinguishes "author not found" from validation
// failures; the external HTTP adapter maps on that distinction.
type UpdateAuthorUseCase struct {
	repo repository.Repository
	log  logger.Logger
}

func NewUpdateAuthorUseCase(repo repository.Repository, log logger.Logger) *UpdateAuthorUseCase {
	return &UpdateAuthorUseCase{repo: repo, log: log}
}

func (uc *UpdateAuthorUseCase) Execute(ctx context.Context, cmd author.UpdateAuthorCommand) author.UpdateAuthorResult {
	if err := cmd.Validate(); err != nil {
		return author.UpdateAuthorResult{Message: "validation failed", Errors: flattenValidationErrors(err)}
	}

	current, err := uc.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return author.UpdateAuthorResult{Message: author.ErrAuthorNotFound.Error()}
		}
		uc.log.Error("update author: lookup failed", err)
		return author.UpdateAuthorResult{Message: genericFailureMessage}
	}

	if cmd.FirstName != nil || cmd.MiddleName != nil || cmd.LastName != nil {
		first := current.Name.First()
		middle := current.Name.Middle()
		last := current.Name.Last()
		if cmd.FirstName != nil {
			first = *cmd.FirstName
		}
		if cmd.MiddleName != nil {
			middle = *cmd.MiddleName
		}
		if cmd.LastName != nil {
			last = *cmd.LastName
		}
		name, err := values.NewPersonName(first, middle, last)
		if err != nil {
			return author.UpdateAuthorResult{Message: "validation failed", Errors: []string{err.Error()}}
		}
		if err := current.UpdateName(name); err != nil {
			return author.UpdateAuthorResult{Message: "validation failed", Errors: []string{err.Error()}}
		}
	}

	if cmd.Email != nil {
		if *cmd.Email == "" {
			current.UpdateEmail(nil)
		} else {
			addr, err := values.NewEmailAddress(*cmd.Email)
			if err != nil {
				return author.UpdateAuthorResult{Message: "validation failed", Errors: []string{err.Error()}}
			}
			if taken, failure := uc.emailTakenByOther(ctx, current.ID, addr); failure != nil {
				return *failure
			} else if taken {
				return author.UpdateAuthorResult{Message: author.ErrEmailTaken.Error(), Errors: []string{author.ErrEmailTaken.Error()}}
			}
			current.UpdateEmail(&addr)
		}
	}

	if cmd.Bio != nil {
		if err := current.UpdateBio(*cmd.Bio); err != nil {
			return author.UpdateAuthorResult{Message: "validation failed", Errors: []string{err.Error()}}
		}
	}

	if cmd.Nationality != nil {
		current.UpdateNationality(cmd.Nationality)
	}

	if cmd.Active != nil {
		if *cmd.Active {
			current.Reactivate()
		} else {
			current.Deactivate()
		}
	}

	saved, err := uc.repo.Save(ctx, current)
	if err != nil {
		if errors.Is(err, author.ErrEmailTaken) {
			return author.UpdateAuthorResult{Message: author.ErrEmailTaken.Error(), Errors: []string{author.ErrEmailTaken.Error()}}
		}
		uc.log.Error("update author: save failed", err)
		return author.UpdateAuthorResult{Message: genericFailureMessage}
	}

	return author.UpdateAuthorResult{
		AuthorID: &saved.ID,
		Success:  true,
		Message:  "author updated",
	}
}

func (uc *UpdateAuthorUseCase) emailTakenByOther(ctx context.Context, selfID uuid.UUID, addr values.EmailAddress) (bool, *author.UpdateAuthorResult) {
	existing, err := uc.repo.FindByEmail(ctx, addr.String())
	switch {
	case err == nil:
		return existing.ID != selfID, nil
	case errors.Is(err, author.ErrAuthorNotFound):
		return false, nil
	default:
		uc.log.Error("update author: email lookup failed", err)
		return false, &author.UpdateAuthorResult{Message: genericFailureMessage}
	}
}
