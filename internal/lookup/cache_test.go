package lookup_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alnah/go-note2site/internal/lookup"
)

// countingResolver answers "hash-<name>" and fails for names starting with "bad".
type countingResolver struct {
	calls atomic.Int32
	delay time.Duration
}

func (r *countingResolver) Resolve(ctx context.Context, name string) (string, error) {
	r.calls.Add(1)
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if len(name) >= 3 && name[:3] == "bad" {
		return "", lookup.ErrEmptyHash
	}
	return "hash-" + name, nil
}

func TestCache_Memoizes(t *testing.T) {
	t.Parallel()

	next := &countingResolver{}
	c := lookup.NewCache(next)
	ctx := context.Background()

	for range 3 {
		hash, err := c.Resolve(ctx, "a.png")
		if err != nil || hash != "hash-a.png" {
			t.Fatalf("Resolve() = (%q, %v)", hash, err)
		}
		if _, err := c.Resolve(ctx, "bad.png"); !errors.Is(err, lookup.ErrEmptyHash) {
			t.Fatalf("Resolve(bad) error = %v", err)
		}
	}

	if got := next.calls.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2", got)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestCache_CollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	next := &countingResolver{delay: 50 * time.Millisecond}
	c := lookup.NewCache(next)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Resolve(context.Background(), "same.png")
		}()
	}
	wg.Wait()

	if got := next.calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1", got)
	}
}

func TestCache_DoesNotCacheCancelled(t *testing.T) {
	t.Parallel()

	next := &countingResolver{delay: time.Second}
	c := lookup.NewCache(next)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Resolve(ctx, "a.png"); err == nil {
		t.Fatal("Resolve() with cancelled context expected error")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after cancelled lookup", c.Len())
	}
}

func TestResolveAll(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, 20)
	for i := range 20 {
		names = append(names, fmt.Sprintf("img-%02d.png", i))
	}
	names = append(names, "bad.png")

	out := lookup.ResolveAll(context.Background(), &countingResolver{}, names, 4)

	if len(out) != len(names) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(names))
	}
	for i, o := range out {
		if o.Filename != names[i] {
			t.Errorf("out[%d].Filename = %q, want %q (order must be preserved)", i, o.Filename, names[i])
		}
	}
	if out[0].Hash != "hash-img-00.png" || out[0].Err != nil {
		t.Errorf("out[0] = %+v", out[0])
	}
	if last := out[len(out)-1]; !errors.Is(last.Err, lookup.ErrEmptyHash) {
		t.Errorf("failing lookup outcome = %+v, want ErrEmptyHash", last)
	}
}

// peakResolver records the maximum number of concurrent calls.
type peakResolver struct {
	mu        sync.Mutex
	cur, peak int
}

func (r *peakResolver) Resolve(ctx context.Context, name string) (string, error) {
	r.mu.Lock()
	r.cur++
	if r.cur > r.peak {
		r.peak = r.cur
	}
	r.mu.Unlock()

	time.Sleep(10 * time.Millisecond)

	r.mu.Lock()
	r.cur--
	r.mu.Unlock()
	return "h", nil
}

func TestResolveAll_BoundedWorkers(t *testing.T) {
	t.Parallel()

	names := make([]string, 30)
	for i := range names {
		names[i] = fmt.Sprintf("%d.png", i)
	}

	r := &peakResolver{}
	lookup.ResolveAll(context.Background(), r, names, 3)

	if r.peak > 3 {
		t.Errorf("peak concurrency = %d, want <= 3", r.peak)
	}
}

func TestResolveAll_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := lookup.ResolveAll(ctx, &countingResolver{}, []string{"a.png", "b.png"}, 2)
	for _, o := range out {
		if o.Err == nil {
			t.Errorf("outcome %q has no error after cancellation", o.Filename)
		}
	}
}
