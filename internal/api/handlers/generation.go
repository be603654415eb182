package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jordan/postboard/internal/api/respond"
	"github.com/jordan/postboard/internal/generation"
)

// GenerationHandler proxies AI requests to the external provider. The
// rate-limit guard in front of these routes is what makes them safe to
// expose per user.
type GenerationHandler struct {
	client *generation.Client
}

func NewGenerationHandler(client *generation.Client) *GenerationHandler {
	return &GenerationHandler{client: client}
}

func (h *GenerationHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req generation.ImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Prompt == "" {
		respond.Error(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	resp, err := h.client.GenerateImage(r.Context(), req)
	if err != nil {
		log.Printf("ERROR [generation.GenerateImage] provider call failed: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Image generation failed")
		return
	}

	respond.JSON(w, http.StatusOK, resp.Data)
}

func (h *GenerationHandler) ChatCompletion(w http.ResponseWriter, r *http.Request) {
	var req generation.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		respond.Error(w, http.StatusBadRequest, "Messages are required")
		return
	}

	resp, err := h.client.ChatCompletion(r.Context(), req)
	if err != nil {
		log.Printf("ERROR [generation.ChatCompletion] provider call failed: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Chat completion failed")
		return
	}

	respond.JSON(w, http.StatusOK, resp)
}
