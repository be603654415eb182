package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jordan/postboard/internal/api/handlers"
	"github.com/jordan/postboard/internal/api/middleware"
	"github.com/jordan/postboard/internal/config"
	"github.com/jordan/postboard/internal/generation"
	"github.com/jordan/postboard/internal/quota"
	"github.com/jordan/postboard/internal/repository"
	"github.com/jordan/postboard/internal/service"
	"github.com/jordan/postboard/internal/storage"
)

func NewRouter(
	services *service.Services,
	repos *repository.Repositories,
	uploader *storage.Uploader,
	genClient *generation.Client,
	quotaStore quota.Store,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.ClientURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	userHandler := handlers.NewUserHandler(services.Auth, services.User, uploader, cfg)
	postHandler := handlers.NewPostHandler(services.Post, uploader)
	reviewHandler := handlers.NewReviewHandler(services.Review)
	generationHandler := handlers.NewGenerationHandler(genClient)

	// Guard chains: every protected route passes Auth first, then any
	// route-specific guard, in that order.
	auth := middleware.Auth(services.Auth)
	postOwner := middleware.PostOwner(repos.Post)
	reviewOwner := middleware.ReviewOwner(repos.Review)
	selfReview := middleware.PreventSelfReview(repos.Post)
	duplicateReview := middleware.PreventDuplicateReview(repos.Review)
	rateLimit := middleware.RateLimit(quotaStore)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// Public routes
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
			r.Post("/logout", userHandler.Logout)

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Get("/check-session", userHandler.CheckSession)
				r.Get("/", userHandler.List)
				r.Get("/{id}", userHandler.Get)
				r.Put("/{id}", userHandler.Update)
				r.With(middleware.RequireAdmin).Delete("/{id}", userHandler.Delete)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Use(auth)
			r.Get("/", postHandler.List)
			r.Post("/", postHandler.Create)
			r.Get("/user", postHandler.ListByUser)
			r.Get("/{id}", postHandler.Get)
			r.With(postOwner).Put("/{id}", postHandler.Update)
			r.With(postOwner).Delete("/{id}", postHandler.Delete)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Use(auth)
			r.Get("/post/{postId}", reviewHandler.ListByPost)
			r.With(selfReview, duplicateReview).Post("/post/{postId}", reviewHandler.Create)
			r.Get("/{id}", reviewHandler.Get)
			r.With(reviewOwner).Put("/{id}", reviewHandler.Update)
			r.With(reviewOwner).Delete("/{id}", reviewHandler.Delete)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth, rateLimit)
			r.Post("/images/generations", generationHandler.GenerateImage)
			r.Post("/chat/completions", generationHandler.ChatCompletion)
		})
	})

	return r
}
