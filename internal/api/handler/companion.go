package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/auraleaf/aura-api/internal/api/middleware"
	"github.com/auraleaf/aura-api/internal/api/response"
	"github.com/auraleaf/aura-api/internal/domain"
	"github.com/auraleaf/aura-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CompanionHandler struct {
	companionService *service.CompanionService
}

func NewCompanionHandler(companionService *service.CompanionService) *CompanionHandler {
	return &CompanionHandler{companionService: companionService}
}

// StartConversation starts a fresh conversation, superseding the current one.
// Pending replies for the old conversation are cancelled server-side.
func (h *CompanionHandler) StartConversation(w http.ResponseWriter, r *http.Request) {
	conv, err := h.companionService.StartNewConversation(r.Context(), middleware.FirstName(r.Context()))
	if err != nil {
		writeCompanionError(w, err)
		return
	}

	response.Created(w, conv)
}

// CurrentConversation returns the active conversation and whether a reply is
// in flight
func (h *CompanionHandler) CurrentConversation(w http.ResponseWriter, r *http.Request) {
	conv := h.companionService.Current()
	if conv == nil {
		response.NotFound(w, "no active conversation")
		return
	}

	response.OK(w, map[string]any{
		"conversation": conv,
		"responding":   h.companionService.IsResponding(),
	})
}

// GetMessages returns the active conversation's history with reactions
func (h *CompanionHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.companionService.History(r.Context())
	if err != nil {
		writeCompanionError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"messages":   messages,
		"responding": h.companionService.IsResponding(),
	})
}

// SubmitMessage accepts a user message and schedules the companion reply. The
// reply lands asynchronously; clients poll GetMessages for it.
func (h *CompanionHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	msg, err := h.companionService.SubmitUserMessage(r.Context(), middleware.FirstName(r.Context()), req.Content)
	if err != nil {
		writeCompanionError(w, err)
		return
	}

	response.Accepted(w, map[string]any{
		"message":    msg,
		"responding": true,
	})
}

// ToggleReaction flips a reaction on a message
func (h *CompanionHandler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
	messageID, err := uuid.Parse(chi.URLParam(r, "messageID"))
	if err != nil {
		response.BadRequest(w, "Invalid message ID")
		return
	}

	var req struct {
		ReactionType string `json:"reaction_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	reaction, added, err := h.companionService.ToggleReaction(r.Context(), messageID, domain.ReactionType(req.ReactionType))
	if err != nil {
		writeCompanionError(w, err)
		return
	}

	if !added {
		response.OK(w, map[string]any{"added": false})
		return
	}
	response.OK(w, map[string]any{"added": true, "reaction": reaction})
}

// PostResources posts the professional-resource catalog into the conversation
func (h *CompanionHandler) PostResources(w http.ResponseWriter, r *http.Request) {
	msg, err := h.companionService.PostResourceList(r.Context(), middleware.FirstName(r.Context()))
	if err != nil {
		writeCompanionError(w, err)
		return
	}

	response.Created(w, msg)
}

func writeCompanionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		response.UnprocessableEntity(w, "Message cannot be empty")
	case errors.Is(err, domain.ErrMessageTooLong):
		response.UnprocessableEntity(w, "Message is too long")
	case errors.Is(err, domain.ErrResponseInFlight):
		response.Conflict(w, "A response is already being generated")
	case errors.Is(err, domain.ErrInvalidReaction):
		response.BadRequest(w, "Unknown reaction type")
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "Not found")
	case errors.Is(err, domain.ErrNoActiveUser):
		response.Unauthorized(w, "No active user")
	case errors.Is(err, domain.ErrStoreUnavailable):
		response.ServiceUnavailable(w, "Storage is unavailable, please try again")
	default:
		response.InternalError(w, "Something went wrong")
	}
}
