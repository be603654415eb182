package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jordan/postboard/internal/api/middleware"
	"github.com/jordan/postboard/internal/api/respond"
	"github.com/jordan/postboard/internal/domain"
	"github.com/jordan/postboard/internal/service"
	"github.com/jordan/postboard/internal/storage"
)

type PostHandler struct {
	postService *service.PostService
	uploader    *storage.Uploader
}

func NewPostHandler(postService *service.PostService, uploader *storage.Uploader) *PostHandler {
	return &PostHandler{
		postService: postService,
		uploader:    uploader,
	}
}

type CreatePostRequest struct {
	Text string `json:"text"`
	// ImageData carries a base64 (optionally data-URI) generated image.
	ImageData string   `json:"imageData"`
	Tags      []string `json:"tags"`
}

type UpdatePostRequest struct {
	Text  *string `json:"text"`
	Image *string `json:"image"`
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		log.Printf("ERROR [post.List] failed to list posts: %v", err)
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, posts)
}

func (h *PostHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}

	posts, err := h.postService.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		log.Printf("ERROR [post.ListByUser] failed to list posts: %v", err)
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.postService.GetByID(r.Context(), id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, post)
}

// Create accepts a multipart form with a raw image file, or JSON carrying a
// generated-image payload. Either way the image is made durable and signed
// before the post record is written.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}

	var req CreatePostRequest
	var image *storage.FileSource

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			respond.Error(w, http.StatusBadRequest, "Invalid form data")
			return
		}
		req.Text = r.FormValue("text")

		file, header, err := r.FormFile("image")
		if err == nil {
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				respond.Error(w, http.StatusBadRequest, "Invalid image upload")
				return
			}
			image = &storage.FileSource{
				Bytes:        data,
				ContentType:  header.Header.Get("Content-Type"),
				OriginalName: header.Filename,
			}
		} else if err != http.ErrMissingFile {
			respond.Error(w, http.StatusBadRequest, "Invalid image upload")
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.ImageData != "" {
			src, err := storage.DecodeGeneratedImage(req.ImageData)
			if err != nil {
				log.Printf("ERROR [post.Create] bad generated image payload: %v", err)
				respond.DomainError(w, domain.ErrUploadFailed)
				return
			}
			image = src
		}
	}

	if req.Text == "" {
		respond.Error(w, http.StatusBadRequest, "Text is required")
		return
	}

	var imageURL string
	if image != nil {
		obj, err := h.uploader.Upload(r.Context(), claims.Name, storage.ScopePosts, image)
		if err != nil {
			log.Printf("ERROR [post.Create] image upload failed: %v", err)
			respond.DomainError(w, domain.ErrUploadFailed)
			return
		}
		imageURL = obj.SignedURL
	}

	post, err := h.postService.Create(r.Context(), service.CreatePostInput{
		Text:     req.Text,
		ImageURL: imageURL,
		Tags:     req.Tags,
		UserID:   claims.UserID,
	})
	if err != nil {
		log.Printf("ERROR [post.Create] failed to create post: %v", err)
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, post)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Post not found")
		return
	}

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.postService.Update(r.Context(), id, service.UpdatePostInput{
		Text:     req.Text,
		ImageURL: req.Image,
	})
	if err != nil {
		log.Printf("ERROR [post.Update] failed to update post: %v", err)
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Post not found")
		return
	}

	if err := h.postService.Delete(r.Context(), id); err != nil {
		respond.DomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
