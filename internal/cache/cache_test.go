package cache

import (
	"bytes"
	"testing"
	"time"
)

func TestKey_Deterministic(t *testing.T) {
	a := Key("Severe sepsis with hypotension")
	b := Key("Severe sepsis with hypotension")
	c := Key("Severe sepsis with hypotension ")

	if a != b {
		t.Error("identical texts must map to the same key")
	}
	if a == c {
		t.Error("different texts must map to different keys")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Hour, time.Hour)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("v")) {
		t.Errorf("expected hit with value v, got %q (found=%v)", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	key := Key("Severe sepsis")
	if err := c.Set(key, []byte("interpretation"), 0); err != nil {
		t.Fatal(err)
	}

	// A fresh cache over the same directory must see the entry.
	c2 := NewDiskCache(dir, time.Hour)
	val, found := c2.Get(key)
	if !found || !bytes.Equal(val, []byte("interpretation")) {
		t.Errorf("expected persisted entry, got %q (found=%v)", val, found)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	if err := c.Set("k", []byte("v"), -time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected expired entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed only the disk layer.
	seed := NewDiskCache(dir, time.Hour)
	if err := seed.Set("k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}

	layered := NewLayeredCache(time.Hour, dir, time.Hour)
	val, found := layered.Get("k")
	if !found || !bytes.Equal(val, []byte("v")) {
		t.Fatalf("expected disk hit through layered cache, got %q (found=%v)", val, found)
	}

	// After promotion the memory layer answers even if disk is cleared.
	if err := seed.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, found := layered.Get("k"); !found {
		t.Error("expected promoted entry in memory layer")
	}
}
