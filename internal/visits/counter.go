// Package visits counts page views per visitor session.
package visits

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/bookhaven-backend/pkg/errors"
)

// Store is the Redis surface the counter needs. *redis.Client satisfies it.
type Store interface {
	IncrSliding(ctx context.Context, key string, ttl time.Duration) (int64, error)
	VisitsKey(sessionID string) string
}

// Counter tracks how many times a session has viewed the home page.
type Counter struct {
	store Store
	ttl   time.Duration
}

// NewCounter builds a counter whose keys expire ttl after the last visit.
func NewCounter(store Store, ttl time.Duration) (*Counter, error) {
	if store == nil {
		return nil, fmt.Errorf("visits store required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("visits ttl must be positive")
	}
	return &Counter{store: store, ttl: ttl}, nil
}

// Hit returns the visit number to display and advances the counter. The first
// visit of a session displays 1.
func (c *Counter) Hit(ctx context.Context, sessionID string) (int64, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return 1, nil
	}
	n, err := c.store.IncrSliding(ctx, c.store.VisitsKey(sessionID), c.ttl)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count visit")
	}
	return n, nil
}
