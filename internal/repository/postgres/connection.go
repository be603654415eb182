package postgres

import (
	"github.com/jordan/postboard/internal/domain"
	"github.com/jordan/postboard/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// Needed so the reviews (post_id, user_id) unique index surfaces as
		// gorm.ErrDuplicatedKey instead of a raw pgx error.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Post{},
		&domain.Review{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:   NewUserRepository(db),
		Post:   NewPostRepository(db),
		Review: NewReviewRepository(db),
	}
}
