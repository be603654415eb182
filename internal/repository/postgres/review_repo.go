package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jordan/postboard/internal/domain"
	"gorm.io/gorm"
)

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *reviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	err := r.db.WithContext(ctx).Create(review).Error
	// Concurrent submissions can both pass the guard-level existence check;
	// the (post_id, user_id) unique index is the backstop.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateReview
	}
	return err
}

func (r *reviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	var review domain.Review
	err := r.db.WithContext(ctx).Preload("User").First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Review, error) {
	var reviews []*domain.Review
	err := r.db.WithContext(ctx).Preload("User").Order("created_at desc").Find(&reviews, "post_id = ?", postID).Error
	return reviews, err
}

func (r *reviewRepository) GetByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*domain.Review, error) {
	var review domain.Review
	err := r.db.WithContext(ctx).First(&review, "post_id = ? AND user_id = ?", postID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
