package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/heinhtoo/quicktask-api/internal/cache"
	"github.com/heinhtoo/quicktask-api/internal/constants"
	"github.com/heinhtoo/quicktask-api/internal/dto"
	"github.com/heinhtoo/quicktask-api/internal/logger"
	"github.com/heinhtoo/quicktask-api/internal/models"
	"github.com/heinhtoo/quicktask-api/internal/repository"
	"github.com/heinhtoo/quicktask-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTooLong  = errors.New("username must be at most 200 characters")
	ErrUsernameTaken    = errors.New("username already exists")
)

// UserService handles user registration and listing
type UserService struct {
	users repository.UserRepository
	cache cache.Cache
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository, c cache.Cache) *UserService {
	return &UserService{
		users: users,
		cache: c,
	}
}

// cachedUserList is the serialized form of the default user listing.
type cachedUserList struct {
	Users []dto.UserDTO `json:"users"`
	Total int64         `json:"total"`
}

// Register creates a user on first registration. Usernames are immutable
// and users are never deleted through the API.
func (s *UserService) Register(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(username) > constants.MaxNameLength {
		return nil, ErrUsernameTooLong
	}

	if _, err := s.users.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	user := &models.User{Username: username}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Invalidation set: users
	s.invalidate(ctx, cache.UsersKey)

	return user, nil
}

// List returns users for member pickers. The default first page is served
// read-through from the cache; other pages always hit the store.
func (s *UserService) List(ctx context.Context, params utils.PaginationParams) ([]dto.UserDTO, int64, error) {
	cacheable := params.Page == constants.MinPageSize && params.Limit == constants.DefaultPageSize

	if cacheable {
		if value, err := s.cache.Get(ctx, cache.UsersKey); err == nil {
			var cached cachedUserList
			if unmarshalErr := json.Unmarshal([]byte(value), &cached); unmarshalErr == nil {
				return cached.Users, cached.Total, nil
			}
		} else if !errors.Is(err, cache.ErrMiss) {
			logger.Warn("user list cache read failed", "error", err)
		}
	}

	users, total, err := s.users.List(params.Offset, params.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	dtos := dto.ToUserDTOs(users)

	if cacheable {
		if value, err := json.Marshal(cachedUserList{Users: dtos, Total: total}); err == nil {
			if setErr := s.cache.Set(ctx, cache.UsersKey, string(value)); setErr != nil {
				logger.Warn("user list cache write failed", "error", setErr)
			}
		}
	}

	return dtos, total, nil
}

func (s *UserService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}
