package services

import (
	"testing"
	"time"
)

func TestDerivedCache_GetSet(t *testing.T) {
	c := newDerivedCache[int](time.Minute)

	if _, ok := c.get("missing"); ok {
		t.Fatal("empty cache should miss")
	}

	c.set("v1", 42)
	got, ok := c.get("v1")
	if !ok || got != 42 {
		t.Fatalf("got %d/%v, want 42/true", got, ok)
	}
}

func TestDerivedCache_Expiry(t *testing.T) {
	c := newDerivedCache[string](-time.Second) // everything born expired

	c.set("k", "v")
	if _, ok := c.get("k"); ok {
		t.Fatal("expired entry should miss")
	}
}

func TestDerivedCache_Flush(t *testing.T) {
	c := newDerivedCache[int](time.Minute)
	c.set("a", 1)
	c.set("b", 2)

	c.flush()

	if _, ok := c.get("a"); ok {
		t.Fatal("flushed cache should miss")
	}
}
