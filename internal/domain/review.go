package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is one user's take on another user's post. The composite unique
// index is the authority of record for the one-review-per-user rule; the
// guard-level existence check is only a fast path.
type Review struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Text      string    `json:"text" gorm:"not null"`
	PostID    uuid.UUID `json:"postId" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_post_user"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_post_user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Post *Post `json:"post,omitempty" gorm:"foreignKey:PostID"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
