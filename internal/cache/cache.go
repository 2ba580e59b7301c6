package cache

import (
	"context"
	"errors"
	"strconv"
)

// ErrMiss is returned by Get when the key is not present.
var ErrMiss = errors.New("cache: key not found")

// Cache is a best-effort read-through store for serialized reports and
// resolved identities. There is no TTL anywhere; staleness is controlled
// purely by explicit invalidation on writes, so every mutating code path
// must delete the exact keys it affects.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// UsersKey caches the full user listing.
const UsersKey = "users"

// UserKey caches a resolved username to user id mapping.
func UserKey(username string) string {
	return "user:" + username
}

// TaskListsKey caches an owner's task-list report.
func TaskListsKey(ownerID uint64) string {
	return "taskLists:" + strconv.FormatUint(ownerID, 10)
}

// TeamListsKey caches an owner's team report.
func TeamListsKey(ownerID uint64) string {
	return "teamLists:" + strconv.FormatUint(ownerID, 10)
}
