package handler

import (
	"encoding/json"
	"net/http"

	"github.com/auraleaf/aura-api/internal/api/middleware"
	"github.com/auraleaf/aura-api/internal/api/response"
	"github.com/auraleaf/aura-api/internal/domain"
	"github.com/auraleaf/aura-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

type FeedHandler struct {
	feedService *service.FeedService
}

func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// ListPosts returns the feed, newest first, with comment threads
func (h *FeedHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.feedService.ListPosts(r.Context())
	if err != nil {
		writeCompanionError(w, err)
		return
	}

	response.OK(w, map[string]any{"posts": posts})
}

// CreatePost publishes a new feed entry
func (h *FeedHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req domain.PostCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	userName, _ := middleware.GetUserName(r.Context())
	userEmail, _ := middleware.GetUserEmail(r.Context())

	post, err := h.feedService.CreatePost(r.Context(), userName, userEmail, req)
	if err != nil {
		writeCompanionError(w, err)
		return
	}

	response.Created(w, post)
}

// ListComments returns a post's comments, oldest first
func (h *FeedHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	comments, err := h.feedService.CommentsForPost(r.Context(), postID)
	if err != nil {
		writeCompanionError(w, err)
		return
	}

	response.OK(w, map[string]any{"comments": comments})
}

// AddComment attaches a comment to a post
func (h *FeedHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	var req domain.CommentCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	userName, _ := middleware.GetUserName(r.Context())
	userEmail, _ := middleware.GetUserEmail(r.Context())

	comment, count, err := h.feedService.AddComment(r.Context(), postID, userName, userEmail, req)
	if err != nil {
		writeCompanionError(w, err)
		return
	}

	response.Created(w, map[string]any{
		"comment":       comment,
		"comment_count": count,
	})
}

// Heart applies the client's desired heart state and returns the confirmed
// counter. The client keeps its own has-hearted flag; nothing per-user is
// stored here.
func (h *FeedHandler) Heart(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	var req struct {
		Hearted bool `json:"hearted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	hearts, err := h.feedService.SetHeart(r.Context(), postID, req.Hearted)
	if err != nil {
		writeCompanionError(w, err)
		return
	}

	response.OK(w, map[string]any{"hearts": hearts})
}

// ToggleReaction flips a typed reaction on a post
func (h *FeedHandler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	var req struct {
		ReactionType string `json:"reaction_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	reaction, added, err := h.feedService.TogglePostReaction(r.Context(), postID, domain.PostReactionType(req.ReactionType))
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
