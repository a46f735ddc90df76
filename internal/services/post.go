package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/sirupsen/logrus"
)

// PostService handles posts and the comments under them.
type PostService struct {
	store repository.Store
	log   *logrus.Logger
}

func NewPostService(store repository.Store, log *logrus.Logger) *PostService {
	if store == nil {
		panic("store cannot be nil for PostService")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PostService{store: store, log: log}
}

// ListPosts returns the feed, newest first.
func (s *PostService) ListPosts(ctx context.Context, page, perPage int) (*Page[models.Post], error) {
	return s.list(ctx, 0, page, perPage)
}

// ListUserPosts returns one owner's posts, newest first.
func (s *PostService) ListUserPosts(ctx context.Context, ownerID uint, page, perPage int) (*Page[models.Post], error) {
	if ownerID == 0 {
		return nil, ErrAuthenticationRequired
	}
	return s.list(ctx, ownerID, page, perPage)
}

func (s *PostService) list(ctx context.Context, ownerID uint, page, perPage int) (*Page[models.Post], error) {
	page, perPage = normalizePage(page, perPage)

	posts, total, err := s.store.Posts().List(ctx, ownerID, offsetFor(page, perPage), perPage)
	if err != nil {
		return nil, err
	}
	if err := s.fillCommentCounts(ctx, posts); err != nil {
		return nil, err
	}
	return NewPage(posts, total, page, perPage), nil
}

// fillCommentCounts 批量填充帖子的评论数量
func (s *PostService) fillCommentCounts(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	counts, err := s.store.Comments().CountByPosts(ctx, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].CommentCount = counts[posts[i].ID]
	}
	return nil
}

func (s *PostService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	post, err := s.store.Posts().FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) CreatePost(ctx context.Context, ownerID uint, title, content string) (*models.Post, error) {
	if ownerID == 0 {
		return nil, ErrAuthenticationRequired
	}
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, ErrInvalidInput
	}

	post := &models.Post{UserID: ownerID, Title: title, Content: content}
	if err := s.store.Posts().Create(ctx, post); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"post_id": post.ID, "user_id": ownerID}).Info("Post created")
	return post, nil
}

// UpdatePost checks existence, then ownership, then input.
func (s *PostService) UpdatePost(ctx context.Context, postID, actingUserID uint, title, content string) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(post.UserID, actingUserID); err != nil {
		s.log.WithFields(logrus.Fields{"post_id": postID, "user_id": actingUserID}).Warn("Update rejected: not the owner")
		return err
	}

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return ErrInvalidInput
	}

	if err := s.store.Posts().Update(ctx, postID, title, content); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.log.WithField("post_id", postID).Info("Post updated")
	return nil
}

// DeletePost removes the post and its comments in one transaction. The
// comments are deleted explicitly so databases lacking the cascade
// constraint end up in the same state.
func (s *PostService) DeletePost(ctx context.Context, postID, actingUserID uint) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(post.UserID, actingUserID); err != nil {
		s.log.WithFields(logrus.Fields{"post_id": postID, "user_id": actingUserID}).Warn("Delete rejected: not the owner")
		return err
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Comments().DeleteByPost(ctx, postID); err != nil {
			return err
		}
		return tx.Posts().Delete(ctx, postID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete post %d: %w", postID, err)
	}

	s.log.WithField("post_id", postID).Info("Post deleted")
	return nil
}

// AddComment checks the post first, then the session, then the content.
func (s *PostService) AddComment(ctx context.Context, postID, authorID uint, content string) (*models.Comment, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	if authorID == 0 {
		return nil, ErrAuthenticationRequired
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrInvalidInput
	}

	comment := &models.Comment{PostID: postID, UserID: authorID, Content: content}
	if err := s.store.Comments().Create(ctx, comment); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"comment_id": comment.ID, "post_id": postID, "user_id": authorID}).Info("Comment added")
	return comment, nil
}

// ListComments returns a post's comments, newest first.
func (s *PostService) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.store.Comments().ListByPost(ctx, postID)
}
