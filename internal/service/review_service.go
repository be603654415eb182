package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jordan/postboard/internal/domain"
	"github.com/jordan/postboard/internal/repository"
)

type ReviewService struct {
	reviewRepo repository.ReviewRepository
	postRepo   repository.PostRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, postRepo repository.PostRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		postRepo:   postRepo,
	}
}

type UpdateReviewInput struct {
	Text *string
}

func (s *ReviewService) Create(ctx context.Context, postID, userID uuid.UUID, text string) (*domain.Review, error) {
	// The guards already confirmed the post exists, but they ran an
	// interleaving-window ago; re-check so a deleted post can't gain reviews.
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		ID:        uuid.New(),
		Text:      text,
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return s.reviewRepo.GetByID(ctx, review.ID)
}

func (s *ReviewService) ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Review, error) {
	return s.reviewRepo.ListByPost(ctx, postID)
}

func (s *ReviewService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	return s.reviewRepo.GetByID(ctx, id)
}

func (s *ReviewService) Update(ctx context.Context, id uuid.UUID, input UpdateReviewInput) (*domain.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Text != nil {
		review.Text = *input.Text
	}
	review.UpdatedAt = time.Now()

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.reviewRepo.Delete(ctx, id)
}
