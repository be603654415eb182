package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jordan/postboard/internal/api/middleware"
	"github.com/jordan/postboard/internal/api/respond"
	"github.com/jordan/postboard/internal/service"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type CreateReviewRequest struct {
	Text string `json:"text"`
}

type UpdateReviewRequest struct {
	Text *string `json:"text"`
}

func (h *ReviewHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "postId"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Post not found")
		return
	}

	reviews, err := h.reviewService.ListByPost(r.Context(), postID)
	if err != nil {
		log.Printf("ERROR [review.ListByPost] failed to list reviews: %v", err)
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Review not found")
		return
	}

	review, err := h.reviewService.GetByID(r.Context(), id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}

	postID, err := uuid.Parse(chi.URLParam(r, "postId"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Post not found")
		return
	}

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		respond.Error(w, http.StatusBadRequest, "Text is required")
		return
	}

	// A concurrent duplicate that slipped past the guard surfaces here as
	// ErrDuplicateReview from the unique index and maps to the same 403.
	review, err := h.reviewService.Create(r.Context(), postID, claims.UserID, req.Text)
	if err != nil {
		log.Printf("ERROR [review.Create] failed to create review: %v", err)
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Review not found")
		return
	}

	var req UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := h.reviewService.Update(r.Context(), id, service.UpdateReviewInput{
		Text: req.Text,
	})
	if err != nil {
		log.Printf("ERROR [review.Update] failed to update review: %v", err)
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Review not found")
		return
	}

	if err := h.reviewService.Delete(r.Context(), id); err != nil {
		respond.DomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
