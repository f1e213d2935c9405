package cache

import (
	"errors"
	"reflect"
	"testing"
)

func TestFetchCachesAndReturnsIdenticalData(t *testing.T) {
	c := New()
	calls := 0
	fetch := func() (any, error) {
		calls++
		return []string{"m1", "m2"}, nil
	}

	first, err := c.Fetch("members/page=0", fetch)
	if err != nil {
		t.Fatalf("Fetch() = %v", err)
	}
	second, err := c.Fetch("members/page=0", fetch)
	if err != nil {
		t.Fatalf("Fetch() = %v", err)
	}

	if calls != 1 {
		t.Errorf("fetch function ran %d times, want 1", calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated fetch without mutation must return identical data")
	}
}

func TestFetchErrorNotCached(t *testing.T) {
	c := New()
	boom := errors.New("boom")
	if _, err := c.Fetch("k", func() (any, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("Fetch() = %v, want boom", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("failed fetch must not populate the cache")
	}
}

func TestInvalidateIsIdempotent(t *testing.T) {
	c := New()
	c.Commit(c.Begin("members/1"), "a")
	c.Commit(c.Begin("members/2"), "b")
	c.Commit(c.Begin("tree"), "t")

	if removed := c.Invalidate("members"); removed != 2 {
		t.Errorf("first invalidation removed %d, want 2", removed)
	}
	if removed := c.Invalidate("members"); removed != 0 {
		t.Errorf("re-invalidation removed %d, want 0", removed)
	}
	if _, ok := c.Get("tree"); !ok {
		t.Error("unrelated key dropped by prefix invalidation")
	}
}

func TestInvalidateMatchesWholeSegments(t *testing.T) {
	c := New()
	c.Commit(c.Begin("members/1"), "a")
	c.Commit(c.Begin("membership"), "b")

	c.Invalidate("members")
	if _, ok := c.Get("membership"); !ok {
		t.Error("prefix invalidation must not match partial key segments")
	}
}

func TestLastRequestWins(t *testing.T) {
	c := New()

	stale := c.Begin("members")
	fresh := c.Begin("members")

	// The fresh response lands first; the stale one arrives later and must
	// be discarded by ticket identity, not arrival order.
	if applied := c.Commit(fresh, "fresh"); !applied {
		t.Fatal("newest ticket must apply")
	}
	if applied := c.Commit(stale, "stale"); applied {
		t.Fatal("superseded ticket must be discarded")
	}

	v, ok := c.Get("members")
	if !ok || v != "fresh" {
		t.Errorf("Get() = %v (%t), want fresh", v, ok)
	}
}

func TestTicketRequestIDsAreUnique(t *testing.T) {
	c := New()
	a := c.Begin("k")
	b := c.Begin("k")
	if a.RequestID == "" || a.RequestID == b.RequestID {
		t.Errorf("tickets must carry distinct request ids, got %q and %q", a.RequestID, b.RequestID)
	}
}

func TestClearDropsEverything(t *testing.T) {
	c := New()
	c.Commit(c.Begin("members"), "a")
	c.Commit(c.Begin("users"), "b")

	c.Clear()

	if _, ok := c.Get("members"); ok {
		t.Error("members survived Clear")
	}
	if _, ok := c.Get("users"); ok {
		t.Error("users survived Clear")
	}
}
