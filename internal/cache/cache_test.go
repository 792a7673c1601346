package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("unexpected hit for missing key")
	}

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	got, found := c.Get("k")
	if !found || string(got) != "v" {
		t.Errorf("got %q, %v", got, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("key survived delete")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	got, found := c.Get("k")
	if !found || string(got) != "v" {
		t.Errorf("got %q, %v", got, found)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("expired entry served")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed the disk layer through one cache, then read through a fresh one
	// whose memory layer is cold.
	seed := NewLayeredCache(time.Minute, dir, time.Minute)
	if err := seed.Set("k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}

	c := NewLayeredCache(time.Minute, dir, time.Minute)
	got, found := c.Get("k")
	if !found || string(got) != "v" {
		t.Fatalf("disk layer miss: %q, %v", got, found)
	}

	// After promotion the memory layer serves directly.
	if got, found := c.memory.Get("k"); !found || string(got) != "v" {
		t.Errorf("entry not promoted to memory: %q, %v", got, found)
	}
}
