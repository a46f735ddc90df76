package repository

import (
	"context"
	"fmt"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

type gormCommentRepository struct {
	db *gorm.DB
}

func (r *gormCommentRepository) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list comments of post %d: %w", postID, err)
	}
	return comments, nil
}

// CountByPosts 批量查询评论数量
func (r *gormCommentRepository) CountByPosts(ctx context.Context, postIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: count comments: %w", err)
	}

	for _, res := range results {
		counts[res.PostID] = res.Count
	}
	return counts, nil
}

func (r *gormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit("Post", "User").Create(comment).Error; err != nil {
		return fmt.Errorf("gorm: create comment: %w", err)
	}
	return nil
}

func (r *gormCommentRepository) DeleteByPost(ctx context.Context, postID uint) error {
	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		return fmt.Errorf("gorm: delete comments of post %d: %w", postID, err)
	}
	return nil
}

func (r *gormCommentRepository) DeleteByPosts(ctx context.Context, postIDs []uint) error {
	if len(postIDs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
		return fmt.Errorf("gorm: delete comments of posts: %w", err)
	}
	return nil
}

func (r *gormCommentRepository) DeleteByAuthor(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
		return fmt.Errorf("gorm: delete comments of user %d: %w", userID, err)
	}
	return nil
}
