package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestGetOrLoadJSONCachesValue(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	calls := 0
	load := func(context.Context) (*item, error) {
		calls++
		return &item{Name: "arena"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := GetOrLoadJSON(c, ctx, "venue:1", 0, load)
		if err != nil || got.Name != "arena" {
			t.Fatalf("got %+v, %v", got, err)
		}
	}
	if calls != 1 {
		t.Fatalf("loader calls = %d, want 1", calls)
	}
	if !mr.Exists("vb:venue:1") {
		t.Fatal("expected prefixed key in redis")
	}
	if ttl := mr.TTL("vb:venue:1"); ttl != time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}

	c.Delete(ctx, "venue:1")
	if _, err := GetOrLoadJSON(c, ctx, "venue:1", 0, load); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("after delete calls = %d, want 2", calls)
	}
}

func TestGetOrLoadJSONNegativeCache(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	calls := 0
	load := func(context.Context) (*item, error) {
		calls++
		return nil, nil
	}

	for i := 0; i < 2; i++ {
		got, err := GetOrLoadJSON(c, ctx, "venue:missing", 0, load)
		if err != nil || got != nil {
			t.Fatalf("got %+v, %v", got, err)
		}
	}
	if calls != 1 {
		t.Fatalf("loader calls = %d, want 1", calls)
	}
	if ttl := mr.TTL("vb:venue:missing"); ttl != NegativeTTL {
		t.Fatalf("negative ttl = %v", ttl)
	}
	mr.FastForward(NegativeTTL + time.Second)
	if _, err := GetOrLoadJSON(c, ctx, "venue:missing", 0, load); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("after expiry calls = %d, want 2", calls)
	}
}

func TestGetOrLoadJSONDropsStaleShape(t *testing.T) {
	c, mr := newTestCache(t)
	if err := mr.Set("vb:venue:2", `{"name":`); err != nil {
		t.Fatal(err)
	}
	got, err := GetOrLoadJSON(c, context.Background(), "venue:2", 0, func(context.Context) (*item, error) {
		return &item{Name: "fresh"}, nil
	})
	if err != nil || got.Name != "fresh" {
		t.Fatalf("got %+v, %v", got, err)
	}
	if mr.Exists("vb:venue:2") {
		t.Fatal("stale value should be evicted")
	}
}

func TestPing(t *testing.T) {
	c, mr := newTestCache(t)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatal(err)
	}
	mr.Close()
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected ping failure after redis stops")
	}
}
