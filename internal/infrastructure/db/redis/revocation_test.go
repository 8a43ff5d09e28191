package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type setCall struct {
	key string
	ttl time.Duration
}

type stubDenylistClient struct {
	sets      []setCall
	keys      map[string]bool
	setErr    error
	existsErr error
}

func (c *stubDenylistClient) Set(_ context.Context, key string, _ any, ttl time.Duration) *redis.StatusCmd {
	if c.setErr != nil {
		return redis.NewStatusResult("", c.setErr)
	}
	c.sets = append(c.sets, setCall{key: key, ttl: ttl})
	if c.keys == nil {
		c.keys = make(map[string]bool)
	}
	c.keys[key] = true
	return redis.NewStatusResult("OK", nil)
}

func (c *stubDenylistClient) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	if c.existsErr != nil {
		return redis.NewIntResult(0, c.existsErr)
	}
	var n int64
	for _, k := range keys {
		if c.keys[k] {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func newTestStore(client *stubDenylistClient, now time.Time) *RevocationStore {
	return &RevocationStore{client: client, now: func() time.Time { return now }}
}

func TestRevocationStore_RevokeUsesRemainingLifetime(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	client := &stubDenylistClient{}
	s := newTestStore(client, now)

	if err := s.Revoke(context.Background(), "jti-1", now.Add(90*time.Minute)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if len(client.sets) != 1 {
		t.Fatalf("expected one SET, got %d", len(client.sets))
	}
	if got := client.sets[0]; got.key != "revoked:jti-1" || got.ttl != 90*time.Minute {
		t.Fatalf("unexpected SET: %+v", got)
	}

	revoked, err := s.IsRevoked(context.Background(), "jti-1")
	if err != nil || !revoked {
		t.Fatalf("expected jti-1 revoked, got %v (%v)", revoked, err)
	}
	if revoked, _ := s.IsRevoked(context.Background(), "jti-2"); revoked {
		t.Fatalf("jti-2 was never revoked")
	}
}

func TestRevocationStore_SkipsExpiredTokens(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	client := &stubDenylistClient{}
	s := newTestStore(client, now)

	for _, until := range []time.Time{now, now.Add(-time.Minute)} {
		if err := s.Revoke(context.Background(), "old", until); err != nil {
			t.Fatalf("Revoke(%v): %v", until, err)
		}
	}
	if len(client.sets) != 0 {
		t.Fatalf("expired tokens must not be written, got %+v", client.sets)
	}
}

func TestRevocationStore_PropagatesErrors(t *testing.T) {
	now := time.Now()
	down := errors.New("connection refused")
	s := newTestStore(&stubDenylistClient{setErr: down, existsErr: down}, now)

	if err := s.Revoke(context.Background(), "jti", now.Add(time.Hour)); !errors.Is(err, down) {
		t.Fatalf("Revoke: expected wrapped cause, got %v", err)
	}
	if _, err := s.IsRevoked(context.Background(), "jti"); !errors.Is(err, down) {
		t.Fatalf("IsRevoked: expected wrapped cause, got %v", err)
	}
}
