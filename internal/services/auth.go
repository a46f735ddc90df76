package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/utils"

	"github.com/sirupsen/logrus"
)

// SessionBinder is the per-request session the auth service logs users in
// and out of. The HTTP layer backs it with a cookie session.
type SessionBinder interface {
	Login(userID uint) error
	Logout() error
}

// AuthService 负责用户注册、登录与权限校验
type AuthService struct {
	store repository.Store
	log   *logrus.Logger
}

func NewAuthService(store repository.Store, log *logrus.Logger) *AuthService {
	if store == nil {
		panic("store cannot be nil for AuthService")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AuthService{store: store, log: log}
}

// Register creates an account. The lookup before the insert is advisory; the
// unique index on lower(username) decides concurrent registrations.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	logCtx := s.log.WithField("username", username)

	if _, err := s.store.Users().FindByUsername(ctx, username); err == nil {
		logCtx.Warn("Registration rejected: username taken")
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Username: username, Password: hash}
	if err := s.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.Warn("Registration rejected: username taken (unique index)")
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	logCtx.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

// Authenticate checks the credentials and binds the user to sess.
func (s *AuthService) Authenticate(ctx context.Context, sess SessionBinder, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	logCtx := s.log.WithField("username", username)

	user, err := s.store.Users().FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("Login failed: unknown user")
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		logCtx.Warn("Login failed: bad password")
		return nil, ErrAuthenticationFailed
	}

	if err := sess.Login(user.ID); err != nil {
		return nil, fmt.Errorf("bind session: %w", err)
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in")
	return user, nil
}

func (s *AuthService) Logout(sess SessionBinder) error {
	return sess.Logout()
}

// CurrentUser resolves a session identity. A user deleted after the session
// was issued yields ErrNotFound.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	if userID == 0 {
		return nil, ErrAuthenticationRequired
	}
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// AuthorizeOwner fails with ErrForbidden unless the acting user owns the resource.
func (s *AuthService) AuthorizeOwner(resourceOwnerID, actingUserID uint) error {
	return authorizeOwner(resourceOwnerID, actingUserID)
}

func authorizeOwner(resourceOwnerID, actingUserID uint) error {
	if actingUserID == 0 || resourceOwnerID != actingUserID {
		return ErrForbidden
	}
	return nil
}

// ChangePassword replaces the password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	current = strings.TrimSpace(current)
	next = strings.TrimSpace(next)
	if next == "" {
		return ErrInvalidInput
	}

	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(current, user.Password) {
		return ErrAuthenticationFailed
	}

	hash, err := utils.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.Users().UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.log.WithField("user_id", userID).Info("Password changed")
	return nil
}

// DeleteUser removes a user with everything they own in one transaction:
// their comments, comments under their posts, their posts, then the user.
// Not routed; reserved for administrative tooling.
func (s *AuthService) DeleteUser(ctx context.Context, userID uint) error {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().FindByID(ctx, userID); err != nil {
			return err
		}

		postIDs, err := tx.Posts().IDsByOwner(ctx, userID)
		if err != nil {
			return err
		}
		if err := tx.Comments().DeleteByPosts(ctx, postIDs); err != nil {
			return err
		}
		if err := tx.Comments().DeleteByAuthor(ctx, userID); err != nil {
			return err
		}
		if err := tx.Posts().DeleteByOwner(ctx, userID); err != nil {
			return err
		}
		return tx.Users().Delete(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.log.WithField("user_id", userID).Info("User deleted")
	return nil
}
