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
	"github.com/jordan/postboard/internal/config"
	"github.com/jordan/postboard/internal/domain"
	"github.com/jordan/postboard/internal/service"
	"github.com/jordan/postboard/internal/storage"
)

const maxUploadSize = 50 << 20 // 50 MB

type UserHandler struct {
	authService *service.AuthService
	userService *service.UserService
	uploader    *storage.Uploader
	cfg         *config.Config
}

func NewUserHandler(authService *service.AuthService, userService *service.UserService, uploader *storage.Uploader, cfg *config.Config) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
		uploader:    uploader,
		cfg:         cfg,
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Image string `json:"image,omitempty"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
		Image: user.ImageURL,
	}
}

// Register creates a new identity. Accepts either JSON or multipart form
// data with an optional profile image; the image is uploaded before the
// record is persisted so no user ever references an unissued URL.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	var image *storage.FileSource

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			respond.Error(w, http.StatusBadRequest, "Invalid form data")
			return
		}
		req.Name = r.FormValue("name")
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
		req.Role = r.FormValue("role")

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
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	var imageURL string
	if image != nil {
		obj, err := h.uploader.Upload(r.Context(), req.Name, storage.ScopeProfile, image)
		if err != nil {
			log.Printf("ERROR [user.Register] image upload failed: %v", err)
			respond.DomainError(w, domain.ErrUploadFailed)
			return
		}
		imageURL = obj.SignedURL
	}

	user, err := h.authService.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		ImageURL: imageURL,
	})
	if err != nil {
		log.Printf("ERROR [user.Register] failed to create user: %v", err)
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	h.setSessionCookie(w, result.Token)

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    toUserResponse(result.User),
	})
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *UserHandler) CheckSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respond.JSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": UserResponse{
			ID:    claims.UserID.String(),
			Name:  claims.Name,
			Email: claims.Email,
			Role:  string(claims.Role),
		},
	})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		log.Printf("ERROR [user.List] failed to list users: %v", err)
		respond.DomainError(w, err)
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toUserResponse(user))
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Image    *string `json:"image"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Update(r.Context(), id, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		ImageURL: req.Image,
	})
	if err != nil {
		log.Printf("ERROR [user.Update] failed to update user: %v", err)
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		respond.DomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, h.sessionCookie(token, h.cfg.JWTExpirationHours*3600))
}

func (h *UserHandler) clearSessionCookie(w http.ResponseWriter) {
	// Cleared with matching attributes so the browser drops the original.
	http.SetCookie(w, h.sessionCookie("", -1))
}

func (h *UserHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	secure := h.cfg.IsProduction()
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		MaxAge:   maxAge,
	}
}
