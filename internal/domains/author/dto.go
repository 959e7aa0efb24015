package author

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"bookcatalog-core/internal/domains/author/model"
)

// CreateAuthorCommand carries the primitive input for one author
// creation. Ephemeral; constructed per call, discarded after use.
type CreateAuthorCommand struct {
	FirstName   string     `json:"first_name"`
	MiddleName  string     `json:"middle_name,omitempty"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email,omitempty"`
	Bio         *string    `json:"bio,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Nationality *string    `json:"nationality,omitempty"`
}

// Validate performs cheap structural checks before value objects are
// built. Domain invariants (age, bio length bounds) live in the entity.
func (c CreateAuthorCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.FirstName,
			validation.Required.Error("first name is required"),
			validation.Length(2, 50),
		),
		validation.Field(&c.LastName,
			validation.Required.Error("last name is required"),
			validation.Length(2, 50),
		),
		validation.Field(&c.Email,
			validation.When(c.Email != "", is.Email.Error("invalid email format")),
		),
	)
}

// CreateAuthorResult is the uniform outcome shape reported to callers.
type CreateAuthorResult struct {
	AuthorID *uuid.UUID `json:"author_id,omitempty"`
	Success  bool       `json:"success"`
	Message  string     `json:"message"`
	Errors   []string   `json:"errors,omitempty"`
}

// UpdateAuthorCommand applies a partial update; nil fields are left
// unchanged (PATCH behavior).
type UpdateAuthorCommand struct {
	ID          uuid.UUID `json:"id"`
	FirstName   *string   `json:"first_name,omitempty"`
	MiddleName  *string   `json:"middle_name,omitempty"`
	LastName    *string   `json:"last_name,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	Nationality *string   `json:"nationality,omitempty"`
	Active      *bool     `json:"active,omitempty"`
}

func (c UpdateAuthorCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.By(requireUUID)),
		validation.Field(&c.FirstName, validation.When(c.FirstName != nil, validation.Length(2, 50))),
		validation.Field(&c.LastName, validation.When(c.LastName != nil, validation.Length(2, 50))),
		validation.Field(&c.Email, validation.When(c.Email != nil && *c.Email != "", is.Email.Error("invalid email format"))),
	)
}

func requireUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("validation_required", "id is required")
	}
	return nil
}

// UpdateAuthorResult mirrors CreateAuthorResult; Message distinguishes
// "author not found" from validation failures for the HTTP adapter.
type UpdateAuthorResult struct {
	AuthorID *uuid.UUID `json:"author_id,omitempty"`
	Success  bool       `json:"success"`
	Message  string     `json:"message"`
	Errors   []string   `json:"errors,omitempty"`
}

// Summary is the flattened read shape returned from searches.
type Summary struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	Nationality string    `json:"nationality,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewSummary flattens one entity into its search row.
func NewSummary(a *model.Author) Summary {
	s := Summary{
		ID:          a.ID,
		FullName:    a.Name.FullName(),
		DisplayName: a.Name.DisplayName(),
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
	}
	if a.Email != nil {
		s.Email = a.Email.String()
	}
	if a.Nationality != nil {
		s.Nationality = *a.Nationality
	}
	return s
}

// Filter narrows and paginates repository searches. Filters are
// AND-combined.
type Filter struct {
	Query       string `json:"query"`
	Nationality string `json:"nationality,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
	Limit       int    `json:"limit"`
	Offset      int    `json:"offset"`
	SortBy      string `json:"sort_by"`
	Order       string `json:"order"`
}
