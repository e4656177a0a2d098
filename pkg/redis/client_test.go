package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestValueLifecycle(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	if err := client.Set(ctx, "fa:cart:user-1", "snapshot", 10*time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, err := client.Get(ctx, "fa:cart:user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != "snapshot" {
		t.Fatalf("expected stored value, got %q", value)
	}

	if err := client.Del(ctx, "fa:cart:user-1"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, "fa:cart:user-1"); err == nil || err != redis.Nil {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestSetNXHonorsExistingKey(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	ok, err := client.SetNX(ctx, "fa:lock:cron-worker", "holder-1", time.Minute)
	if err != nil {
		t.Fatalf("setnx failed: %v", err)
	}
	if !ok {
		t.Fatal("expected first setnx to win")
	}

	ok, err = client.SetNX(ctx, "fa:lock:cron-worker", "holder-2", time.Minute)
	if err != nil {
		t.Fatalf("setnx failed: %v", err)
	}
	if ok {
		t.Fatal("expected second setnx to lose")
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.IdempotencyKey("scope", "id"); got != "fa:idempotency:scope:id" {
		t.Fatalf("unexpected idempotency key %s", got)
	}
	if got := client.AccessSessionKey("jti-1"); got != "fa:session:access:jti-1" {
		t.Fatalf("unexpected session key %s", got)
	}
	if got := client.CartKey("user-1"); got != "fa:cart:user-1" {
		t.Fatalf("unexpected cart key %s", got)
	}
	if got := client.CartKeyPattern(); got != "fa:cart:*" {
		t.Fatalf("unexpected cart pattern %s", got)
	}
	if got := client.LockKey("cron-worker"); got != "fa:lock:cron-worker" {
		t.Fatalf("unexpected lock key %s", got)
	}
	if got := client.IdempotencyKey("scope", ""); got != "fa:idempotency:scope" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

func TestUninitializedClientErrors(t *testing.T) {
	ctx := context.Background()
	client := &Client{}
	if err := client.Set(ctx, "k", "v", 0); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
	if _, err := client.Get(ctx, "k"); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
	if err := client.Ping(ctx); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
}

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) TTL(ctx context.Context, key string) *redis.DurationCmd {
	if _, ok := m.data[key]; !ok {
		return redis.NewDurationResult(-2*time.Second, nil)
	}
	return redis.NewDurationResult(time.Minute, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
