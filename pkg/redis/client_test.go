package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/angelmondragon/fleetdesk-backend/pkg/config"
)

type fakeStore struct {
	counts    map[string]int64
	ttls      map[string]time.Duration
	incrErr   error
	expireErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (f *fakeStore) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeStore) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.incrErr != nil {
		return redis.NewIntResult(0, f.incrErr)
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeStore) ExpireNX(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	if f.expireErr != nil {
		return redis.NewBoolResult(false, f.expireErr)
	}
	if _, set := f.ttls[key]; set {
		return redis.NewBoolResult(false, nil)
	}
	f.ttls[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func TestIncrWithTTLStartsWindowOnFirstHit(t *testing.T) {
	store := newFakeStore()
	client := &Client{store: store}
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := client.IncrWithTTL(ctx, "rl:ip:login:10.0.0.1", 15*time.Minute)
		if err != nil {
			t.Fatalf("incr: %v", err)
		}
		if got != want {
			t.Fatalf("count %d want %d", got, want)
		}
	}
	if ttl := store.ttls["fleet:rl:ip:login:10.0.0.1"]; ttl != 15*time.Minute {
		t.Fatalf("window ttl not recorded under the namespaced key: %v", store.ttls)
	}
}

func TestIncrWithTTLPropagatesErrors(t *testing.T) {
	store := newFakeStore()
	client := &Client{store: store}

	store.incrErr = errors.New("connection refused")
	if _, err := client.IncrWithTTL(context.Background(), "k", time.Second); err == nil {
		t.Fatal("expected incr error")
	}

	store.incrErr = nil
	store.expireErr = errors.New("READONLY")
	count, err := client.IncrWithTTL(context.Background(), "k", time.Second)
	if err == nil || count != 1 {
		t.Fatalf("expected expire error with count 1, got %d %v", count, err)
	}
}

func TestUninitializedClient(t *testing.T) {
	var nilClient *Client
	if _, err := nilClient.IncrWithTTL(context.Background(), "k", time.Second); !errors.Is(err, errNotConnected) {
		t.Fatalf("expected errNotConnected, got %v", err)
	}
	if err := (&Client{}).Ping(context.Background()); !errors.Is(err, errNotConnected) {
		t.Fatalf("expected errNotConnected, got %v", err)
	}
	if err := (&Client{}).Close(); err != nil {
		t.Fatalf("close without a connection should be a no-op: %v", err)
	}
}

func TestKey(t *testing.T) {
	if got := Key("rl", " ", "account", "abc"); got != "fleet:rl:account:abc" {
		t.Fatalf("unexpected key %s", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:pw@cache:6380/2", PoolSize: 7, DialTimeout: 3 * time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "cache:6380" || opts.DB != 2 || opts.Password != "pw" || opts.PoolSize != 7 || opts.DialTimeout != 3*time.Second {
		t.Fatalf("unexpected options %+v", opts)
	}
	if _, err := optionsFromConfig(config.RedisConfig{URL: "  "}); err == nil {
		t.Fatal("expected missing url error")
	}
}
