package cache

import (
	"context"
	"errors"
	"testing"
)

type item struct {
	Name string `json:"name"`
}

func TestNilCachePassThrough(t *testing.T) {
	var c *Cache
	calls := 0
	load := func(context.Context) (*item, error) {
		calls++
		return &item{Name: "arena"}, nil
	}
	for i := 0; i < 2; i++ {
		got, err := GetOrLoadJSON(c, context.Background(), "venue:1", 0, load)
		if err != nil {
			t.Fatal(err)
		}
		if got.Name != "arena" {
			t.Fatalf("got %+v", got)
		}
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
	c.Delete(context.Background(), "venue:1")
	if err := c.Ping(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestNilCachePropagatesError(t *testing.T) {
	var c *Cache
	boom := errors.New("boom")
	_, err := GetOrLoadJSON(c, context.Background(), "k", 0, func(context.Context) (*item, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestNewWithoutAddr(t *testing.T) {
	if New("", "", 0, 0) != nil {
		t.Fatal("empty addr should disable cache")
	}
}
