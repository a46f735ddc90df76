package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"
)

// 通用的存储库错误
var (
	// ErrNotFound 表示请求的记录未找到
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry 表示插入或更新违反了唯一约束
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

// UserRepository stores users.
type UserRepository interface {
	// FindByID returns ErrNotFound when no user has the id.
	FindByID(ctx context.Context, id uint) (*models.User, error)
	// FindByUsername matches case-insensitively and returns ErrNotFound on a miss.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// Create inserts a new user and returns ErrDuplicateEntry on a username clash.
	Create(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id uint, digest string) error
	Delete(ctx context.Context, id uint) error
}

// PostRepository stores posts. Listings are ordered newest first.
type PostRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	// List returns one window of posts plus the total count. ownerID 0 means all owners.
	List(ctx context.Context, ownerID uint, offset, limit int) ([]models.Post, int64, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, id uint, title, content string) error
	Delete(ctx context.Context, id uint) error
	DeleteByOwner(ctx context.Context, ownerID uint) error
	IDsByOwner(ctx context.Context, ownerID uint) ([]uint, error)
}

// CommentRepository stores comments. Listings are ordered newest first.
type CommentRepository interface {
	ListByPost(ctx context.Context, postID uint) ([]models.Comment, error)
	CountByPosts(ctx context.Context, postIDs []uint) (map[uint]int, error)
	Create(ctx context.Context, comment *models.Comment) error
	DeleteByPost(ctx context.Context, postID uint) error
	DeleteByPosts(ctx context.Context, postIDs []uint) error
	DeleteByAuthor(ctx context.Context, userID uint) error
}

// Store groups the repositories sharing one database handle. Transaction runs
// fn against a Store bound to a single transaction; a non-nil error from fn
// rolls everything back.
type Store interface {
	Users() UserRepository
	Posts() PostRepository
	Comments() CommentRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
