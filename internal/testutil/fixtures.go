package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jordan/postboard/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	name     string
	email    string
	password string
	role     domain.Role
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		name:     fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("test_%s@example.com", suffix),
		password: "testpassword123",
		role:     domain.RoleUser,
	}
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithRole(role domain.Role) *UserBuilder {
	b.role = role
	return b
}

// Build creates the user in the database and returns it with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         b.name,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Role:         b.role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildAndLogin creates a user, logs it in through the API and returns the
// user together with its session cookie.
func (b *UserBuilder) BuildAndLogin(t *testing.T, ts *TestServer) (*domain.User, *http.Cookie) {
	t.Helper()

	user, password := b.Build(t, ts.DB.DB)

	body, _ := json.Marshal(map[string]string{
		"email":    user.Email,
		"password": password,
	})
	resp, err := http.Post(ts.APIURL("/users/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with status %d", resp.StatusCode)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "token" {
			return user, cookie
		}
	}

	t.Fatal("login response did not set a session cookie")
	return nil, nil
}

// PostBuilder creates test posts
type PostBuilder struct {
	text   string
	image  string
	userID uuid.UUID
}

func NewPostBuilder(userID uuid.UUID) *PostBuilder {
	return &PostBuilder{
		text:   "a test post",
		userID: userID,
	}
}

func (b *PostBuilder) WithText(text string) *PostBuilder {
	b.text = text
	return b
}

func (b *PostBuilder) WithImage(url string) *PostBuilder {
	b.image = url
	return b
}

func (b *PostBuilder) Build(t *testing.T, db *gorm.DB) *domain.Post {
	t.Helper()

	post := &domain.Post{
		ID:        uuid.New(),
		Text:      b.text,
		ImageURL:  b.image,
		UserID:    b.userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}

	return post
}

// ReviewBuilder creates test reviews
type ReviewBuilder struct {
	text   string
	postID uuid.UUID
	userID uuid.UUID
}

func NewReviewBuilder(postID, userID uuid.UUID) *ReviewBuilder {
	return &ReviewBuilder{
		text:   "a test review",
		postID: postID,
		userID: userID,
	}
}

func (b *ReviewBuilder) WithText(text string) *ReviewBuilder {
	b.text = text
	return b
}

func (b *ReviewBuilder) Build(t *testing.T, db *gorm.DB) *domain.Review {
	t.Helper()

	review := &domain.Review{
		ID:        uuid.New(),
		Text:      b.text,
		PostID:    b.postID,
		UserID:    b.userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(review).Error; err != nil {
		t.Fatalf("failed to create review: %v", err)
	}

	return review
}

// DoJSON sends an authenticated JSON request and returns the response.
func DoJSON(t *testing.T, method, url string, payload any, cookie *http.Cookie) *http.Response {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	return resp
}
