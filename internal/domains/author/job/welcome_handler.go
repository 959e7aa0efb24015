package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookcatalog-core/internal/domains/author/repository"
	"bookcatalog-core/internal/events"
	"bookcatalog-core/pkg/cache"
	"bookcatalog-core/pkg/logger"
)

const profileCacheTTL = 24 * time.Hour

// WelcomeHandler processes author onboarding tasks: it records the
// welcome notification and warms the author's profile cache.
type WelcomeHandler struct {
	authors repository.Repository
	cache   cache.Cache
	log     logger.Logger
}

func NewWelcomeHandler(authors repository.Repository, cache cache.Cache, log logger.Logger) *WelcomeHandler {
	return &WelcomeHandler{authors: authors, cache: cache, log: log}
}

func (h *WelcomeHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload events.AuthorWelcomePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		h.log.Error("welcome: unmarshal payload failed", err)
		return err
	}

	log.Info().
		Str("author_id", payload.AuthorID.String()).
		Str("full_name", payload.FullName).
		Msg("sending author welcome notification")

	created, err := h.authors.FindByID(ctx, payload.AuthorID)
	if err != nil {
		h.log.Error("welcome: author lookup failed", err)
		return err
	}

	if err := h.cache.Set(ctx, "author:"+created.ID.String(), created, profileCacheTTL); err != nil {
		// Cache warm is best-effort; the notification already went out.
		h.log.Error("welcome: cache warm failed", err)
	}
	return nil
}

// CreatedHandler reacts to freshly persisted authors. It only logs the
// event today; delivery integrations hang off this hook.
type CreatedHandler struct {
	log logger.Logger
}

func NewCreatedHandler(log logger.Logger) *CreatedHandler {
	return &CreatedHandler{log: log}
}

func (h *CreatedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload events.AuthorCreatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		h.log.Error("author created: unmarshal payload failed", err)
		return err
	}

	log.Info().
		Str("author_id", payload.AuthorID.String()).
		Str("full_name", payload.FullName).
		Time("created_at", payload.CreatedAt).
		Msg("author created")
	return nil
}
