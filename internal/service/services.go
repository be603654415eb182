package service

import (
	"github.com/jordan/postboard/internal/config"
	"github.com/jordan/postboard/internal/repository"
)

type Services struct {
	Auth   *AuthService
	User   *UserService
	Post   *PostService
	Review *ReviewService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:   NewAuthService(repos.User, cfg),
		User:   NewUserService(repos.User),
		Post:   NewPostService(repos.Post),
		Review: NewReviewService(repos.Review, repos.Post),
	}
}
