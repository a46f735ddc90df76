package repository

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

type gormPostRepository struct {
	db *gorm.DB
}

func (r *gormPostRepository) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find post %d: %w", id, err)
	}
	return &post, nil
}

func (r *gormPostRepository) List(ctx context.Context, ownerID uint, offset, limit int) ([]models.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Post{})
	if ownerID != 0 {
		query = query.Where("user_id = ?", ownerID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gorm: count posts: %w", err)
	}
	// 超出范围的页直接返回空结果
	if int64(offset) >= total {
		return []models.Post{}, total, nil
	}

	var posts []models.Post
	err := query.Preload("User").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gorm: list posts: %w", err)
	}
	return posts, total, nil
}

func (r *gormPostRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(post).Error; err != nil {
		return fmt.Errorf("gorm: create post: %w", err)
	}
	return nil
}

// Update touches title and content only; the owner never changes.
func (r *gormPostRepository) Update(ctx context.Context, id uint, title, content string) error {
	result := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":   title,
		"content": content,
	})
	if result.Error != nil {
		return fmt.Errorf("gorm: update post %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormPostRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete post %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormPostRepository) DeleteByOwner(ctx context.Context, ownerID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Delete(&models.Post{}).Error; err != nil {
		return fmt.Errorf("gorm: delete posts of user %d: %w", ownerID, err)
	}
	return nil
}

func (r *gormPostRepository) IDsByOwner(ctx context.Context, ownerID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", ownerID).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("gorm: post ids of user %d: %w", ownerID, err)
	}
	return ids, nil
}
