package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/heinhtoo/quicktask-api/internal/cache"
	"github.com/heinhtoo/quicktask-api/internal/logger"
	"github.com/heinhtoo/quicktask-api/internal/repository"
	"gorm.io/gorm"
)

// ErrUnknownUser is returned when a username has no user row.
var ErrUnknownUser = errors.New("identity: unknown user")

// Resolver maps a username to its durable numeric user id. Resolutions are
// cached with no expiry; identity entries are never invalidated, so a
// renamed or deleted user keeps resolving until the cache is flushed
// out-of-band. Every authorization decision in the API starts here.
type Resolver struct {
	users repository.UserRepository
	cache cache.Cache
}

// NewResolver creates a new Resolver
func NewResolver(users repository.UserRepository, c cache.Cache) *Resolver {
	return &Resolver{
		users: users,
		cache: c,
	}
}

// Resolve returns the user id for a username, reading through the cache.
func (r *Resolver) Resolve(ctx context.Context, username string) (uint64, error) {
	key := cache.UserKey(username)

	if value, err := r.cache.Get(ctx, key); err == nil {
		if id, parseErr := strconv.ParseUint(value, 10, 64); parseErr == nil {
			return id, nil
		}
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.Warn("identity cache read failed", "username", username, "error", err)
	}

	user, err := r.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUnknownUser
		}
		return 0, fmt.Errorf("failed to resolve user: %w", err)
	}

	if err := r.cache.Set(ctx, key, strconv.FormatUint(user.ID, 10)); err != nil {
		logger.Warn("identity cache write failed", "username", username, "error", err)
	}

	return user.ID, nil
}
