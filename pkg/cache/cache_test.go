package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/eskillate/lowpop/pkg/config"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "batch:a", []byte(`{"n":1}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "batch:a")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v", hit, err)
	}
	if string(data) != `{"n":1}` {
		t.Errorf("Get = %s", data)
	}

	if err := c.Delete(ctx, "batch:a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "batch:a"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "batch:a"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("short")); !os.IsNotExist(err) {
		t.Error("expired entry not removed from disk")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("Get(corrupt) = hit %v, err %v", hit, err)
	}
}

func TestFileCacheConcurrentSetGet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	payload := []byte(strings.Repeat("x", 64<<10))
	if err := c.Set(ctx, "batch", payload, time.Hour); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if err := c.Set(ctx, "batch", payload, time.Hour); err != nil {
					t.Errorf("Set: %v", err)
					return
				}
			}
		}()
	}
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				data, hit, err := c.Get(ctx, "batch")
				if err != nil || !hit {
					t.Errorf("Get during writes = hit %v, err %v", hit, err)
					return
				}
				if len(data) != len(payload) {
					t.Errorf("Get returned %d bytes, want %d", len(data), len(payload))
					return
				}
			}
		}()
	}
	wg.Wait()

	files, err := os.ReadDir(filepath.Dir(c.path("batch")))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Errorf("shard holds %d files after writes, want 1 (no temp leftovers)", len(files))
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
	if entries, _ := os.ReadDir(c.Dir()); len(entries) != 0 {
		t.Errorf("%d leftovers after Clear", len(entries))
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	type payload struct {
		Values []float64 `json:"values"`
	}

	var got payload
	if err := GetJSON(ctx, c, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("GetJSON(missing) = %v, want ErrCacheMiss", err)
	}

	n, err := SetJSON(ctx, c, "k", payload{Values: []float64{1, 2.5}}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(`{"values":[1,2.5]}`) {
		t.Errorf("SetJSON size = %d", n)
	}
	if err := GetJSON(ctx, c, "k", &got); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if len(got.Values) != 2 || got.Values[1] != 2.5 {
		t.Errorf("GetJSON = %+v", got)
	}

	if err := c.Set(ctx, "broken", []byte("{"), 0); err != nil {
		t.Fatal(err)
	}
	if err := GetJSON(ctx, c, "broken", &got); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("GetJSON(undecodable) = %v, want ErrCacheMiss", err)
	}
	if _, hit, _ := c.Get(ctx, "broken"); hit {
		t.Error("undecodable entry not deleted")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := BatchKeyOpts{Count: 12, Tier: "int", Seed: 7, Config: config.Default()}

	key := k.BatchKey(base)
	if !strings.HasPrefix(key, "batch:") || len(key) != len("batch:")+64 {
		t.Errorf("BatchKey = %q", key)
	}
	if k.BatchKey(base) != key {
		t.Error("BatchKey should be deterministic")
	}

	variants := map[string]func(*BatchKeyOpts){
		"count":      func(o *BatchKeyOpts) { o.Count = 13 },
		"tier":       func(o *BatchKeyOpts) { o.Tier = "float" },
		"seed":       func(o *BatchKeyOpts) { o.Seed = 8 },
		"full range": func(o *BatchKeyOpts) { o.FullRange = true },
		"config":     func(o *BatchKeyOpts) { o.Config.Generation.MaxValue = 50 },
	}
	for name, mutate := range variants {
		opts := base
		mutate(&opts)
		if k.BatchKey(opts) == key {
			t.Errorf("changing %s should change the key", name)
		}
	}
}

func TestScopedKeyer(t *testing.T) {
	opts := BatchKeyOpts{Count: 5, Tier: "normal", Seed: 1}
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "server:")

	if got, want := scoped.BatchKey(opts), "server:"+inner.BatchKey(opts); got != want {
		t.Errorf("BatchKey = %q, want %q", got, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	opts := BatchKeyOpts{Count: 5}
	scoped := NewScopedKeyer(nil, "prefix:")
	if got, want := scoped.BatchKey(opts), "prefix:"+NewDefaultKeyer().BatchKey(opts); got != want {
		t.Errorf("BatchKey = %q, want %q", got, want)
	}
}

func TestRedisOptions(t *testing.T) {
	tests := []struct {
		addr   string
		want   string
		wantDB int
	}{
		{"", "localhost:6379", 0},
		{"cache:6380", "cache:6380", 0},
		{"redis://cache:6379/2", "cache:6379", 2},
	}
	for _, tt := range tests {
		opts, err := redisOptions(tt.addr)
		if err != nil {
			t.Fatalf("redisOptions(%q): %v", tt.addr, err)
		}
		if opts.Addr != tt.want || opts.DB != tt.wantDB {
			t.Errorf("redisOptions(%q) = %s/%d, want %s/%d", tt.addr, opts.Addr, opts.DB, tt.want, tt.wantDB)
		}
	}

	if _, err := redisOptions("redis://cache:6379/notanumber"); err == nil {
		t.Error("want error for bad database number")
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrUnavailable)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("Retryable should unwrap to the original error")
	}

	// Error message is preserved
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(ErrCacheMiss) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return ErrCacheMiss
	})
	if err != ErrCacheMiss {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrUnavailable)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}

	// Gives up after three attempts
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrUnavailable)
	})
	if !errors.Is(err, ErrUnavailable) || calls != 3 {
		t.Errorf("err = %v after %d calls, want ErrUnavailable after 3", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
