package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Post struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Text      string         `json:"text" gorm:"not null"`
	ImageURL  string         `json:"image,omitempty"`
	Tags      datatypes.JSON `json:"tags,omitempty" gorm:"type:jsonb;default:'[]'"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
