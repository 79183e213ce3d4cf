package visits

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/bookhaven-backend/pkg/errors"
)

type fakeStore struct {
	counts map[string]int64
	ttls   map[string]time.Duration
	err    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (f *fakeStore) IncrSliding(_ context.Context, key string, ttl time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[key]++
	f.ttls[key] = ttl
	return f.counts[key], nil
}

func (f *fakeStore) VisitsKey(sessionID string) string {
	return "bh:session:visits:" + sessionID
}

func TestHitIncrementsPerSession(t *testing.T) {
	store := newFakeStore()
	counter, err := NewCounter(store, time.Hour)
	if err != nil {
		t.Fatalf("new counter: %v", err)
	}
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := counter.Hit(ctx, "abc")
		if err != nil {
			t.Fatalf("hit: %v", err)
		}
		if got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}

	got, err := counter.Hit(ctx, "other")
	if err != nil {
		t.Fatalf("hit: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected fresh session to start at 1, got %d", got)
	}
	if store.ttls["bh:session:visits:abc"] != time.Hour {
		t.Fatalf("expected ttl to be applied")
	}
}

func TestHitWithoutSession(t *testing.T) {
	store := newFakeStore()
	counter, _ := NewCounter(store, time.Hour)

	got, err := counter.Hit(context.Background(), "  ")
	if err != nil {
		t.Fatalf("hit: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if len(store.counts) != 0 {
		t.Fatalf("expected no redis writes")
	}
}

func TestHitStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")
	counter, _ := NewCounter(store, time.Hour)

	_, err := counter.Hit(context.Background(), "abc")
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestNewCounterValidation(t *testing.T) {
	if _, err := NewCounter(nil, time.Hour); err == nil {
		t.Fatalf("expected error for nil store")
	}
	if _, err := NewCounter(newFakeStore(), 0); err == nil {
		t.Fatalf("expected error for zero ttl")
	}
}
