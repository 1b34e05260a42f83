package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	k1 := Key("certs/a.html")
	k2 := Key("certs/b.html")

	if !strings.HasPrefix(k1, "meescheck:v1:") {
		t.Errorf("expected versioned prefix, got %s", k1)
	}
	if k1 == k2 {
		t.Error("different identities must not collide")
	}
	if k1 != Key("certs/a.html") {
		t.Error("key must be deterministic")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("v")) {
		t.Errorf("expected v, got %q found=%v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestDiskCache(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("v")) {
		t.Errorf("expected v, got %q found=%v", val, found)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("expected expired entry to miss")
	}
}

func TestLayeredCache_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()

	// Seed the disk layer directly, then read through a fresh layered
	// cache whose memory layer is cold.
	disk := NewDiskCache(dir, time.Minute)
	if err := disk.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found := layered.Get("k")
	if !found || !bytes.Equal(val, []byte("v")) {
		t.Fatalf("expected disk hit, got %q found=%v", val, found)
	}

	// Promoted copy must now live in memory.
	if _, found := layered.memory.Get("k"); !found {
		t.Error("expected promotion to memory layer")
	}
}
