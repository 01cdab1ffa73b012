package app_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"front_desk/internal/app"
	"front_desk/internal/storage/memory"
)

// ---- fakes ----

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// fakeCache keeps JSON copies so hits decode the way the Redis cache does.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	gets  int
	hits  int
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

// ---- helpers ----

var testNow = time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type fixture struct {
	store *memory.Store
	cache *fakeCache
	desk  *app.Desk
}

func newFixture(t *testing.T, p app.Policy) fixture {
	t.Helper()
	st := memory.New()
	require.NoError(t, app.Seed(context.Background(), st))
	cache := &fakeCache{}
	return fixture{
		store: st,
		cache: cache,
		desk: app.NewDesk(app.Options{
			Store:    st,
			Cache:    cache,
			CacheTTL: time.Minute,
			Clock:    fixedClock{testNow},
			NewID:    sequentialIDs(),
			Policy:   p,
		}),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
