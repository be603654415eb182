package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jordan/postboard/internal/domain"
	"github.com/jordan/postboard/internal/repository"
	"gorm.io/datatypes"
)

type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

type CreatePostInput struct {
	Text     string
	ImageURL string
	Tags     []string
	UserID   uuid.UUID
}

type UpdatePostInput struct {
	Text     *string
	ImageURL *string
}

func (s *PostService) Create(ctx context.Context, input CreatePostInput) (*domain.Post, error) {
	post := &domain.Post{
		ID:        uuid.New(),
		Text:      input.Text,
		ImageURL:  input.ImageURL,
		UserID:    input.UserID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if len(input.Tags) > 0 {
		tags, err := json.Marshal(input.Tags)
		if err != nil {
			return nil, err
		}
		post.Tags = datatypes.JSON(tags)
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload so the response carries the populated user relation.
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Post, error) {
	return s.postRepo.ListByUser(ctx, userID)
}

func (s *PostService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) Update(ctx context.Context, id uuid.UUID, input UpdatePostInput) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Text != nil {
		post.Text = *input.Text
	}
	if input.ImageURL != nil {
		post.ImageURL = *input.ImageURL
	}
	post.UpdatedAt = time.Now()

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.postRepo.Delete(ctx, id)
}
