package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestStore(t *testing.T, opts ...func(*StoreConfig)) *Store {
	t.Helper()
	cfg := StoreConfig{Dir: t.TempDir()}
	for _, o := range opts {
		o(&cfg)
	}
	s, err := NewStore(cfg)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	data := []byte(`{"currentInput":"12"}`)
	if err := s.Put("session", data); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok := s.Get("session")
	if !ok {
		t.Fatal("expected hit")
	}
	if string(got) != string(data) {
		t.Errorf("got %q, want %q", got, data)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)
	if _, ok := s.Get("nope"); ok {
		t.Error("expected miss")
	}
}

func TestPutOverwrites(t *testing.T) {
	s := newTestStore(t)
	_ = s.Put("k", []byte("one"))
	_ = s.Put("k", []byte("two"))

	got, _ := s.Get("k")
	if string(got) != "two" {
		t.Errorf("got %q, want two", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestExpiredEntryIsMiss(t *testing.T) {
	s := newTestStore(t)
	if err := s.PutWithTTL("k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("PutWithTTL: %v", err)
	}
	time.Sleep(2 * time.Millisecond)

	if s.Has("k") {
		t.Error("expired entry should be a miss")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after expired read", s.Len())
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	s := newTestStore(t)
	_ = s.PutWithTTL("k", []byte("v"), 0)
	time.Sleep(2 * time.Millisecond)
	if !s.Has("k") {
		t.Error("zero TTL entry should not expire")
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	_ = s.Put("k", []byte("v"))
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Has("k") {
		t.Error("deleted key still present")
	}
	if err := s.Delete("k"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestReopenRebuildsIndex(t *testing.T) {
	dir := t.TempDir()
	s1, err := NewStore(StoreConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	_ = s1.Put("session", []byte("saved"))
	_ = s1.Close()

	s2, err := NewStore(StoreConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	got, ok := s2.Get("session")
	if !ok || string(got) != "saved" {
		t.Errorf("Get after reopen = %q, %v", got, ok)
	}
}

func TestScanDropsCorruptAndOrphanedEntries(t *testing.T) {
	dir := t.TempDir()
	corrupt := hashKey("corrupt")
	orphan := hashKey("orphan")
	_ = os.WriteFile(filepath.Join(dir, corrupt+".meta"), []byte("{not json"), 0o644)
	_ = os.WriteFile(filepath.Join(dir, corrupt+".data"), []byte("x"), 0o644)
	_ = os.WriteFile(filepath.Join(dir, orphan+".meta"), []byte(`{"key":"orphan"}`), 0o644)
	_ = os.WriteFile(filepath.Join(dir, ".tmp-123"), []byte("partial"), 0o644)

	s, err := NewStore(StoreConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("leftover files: %s", strings.Join(names, ", "))
	}
}

func TestCleanupLoopSweeps(t *testing.T) {
	s := newTestStore(t, func(c *StoreConfig) { c.CleanupInterval = 5 * time.Millisecond })
	_ = s.PutWithTTL("k", []byte("v"), time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for s.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("sweeper never removed the expired entry")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	s := newTestStore(t, func(c *StoreConfig) { c.CleanupInterval = time.Hour })
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}

type sample struct {
	Input string  `json:"input"`
	Value float64 `json:"value"`
}

func TestTypedRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := sample{Input: "3.5", Value: 7}
	if err := PutTyped(s, "typed", want); err != nil {
		t.Fatalf("PutTyped: %v", err)
	}
	got, ok, err := GetTyped[sample](s, "typed")
	if err != nil || !ok {
		t.Fatalf("GetTyped = %v, %v", ok, err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestGetTypedDecodeErrorDeletes(t *testing.T) {
	s := newTestStore(t)
	_ = s.Put("typed", []byte("[1,2,3]"))

	_, ok, err := GetTyped[sample](s, "typed")
	if ok || err == nil {
		t.Fatalf("GetTyped = %v, %v; want miss with error", ok, err)
	}
	if s.Has("typed") {
		t.Error("undecodable entry should be deleted")
	}
}

func TestPutTypedUsesDefaultTTL(t *testing.T) {
	s := newTestStore(t, func(c *StoreConfig) { c.DefaultTTL = time.Nanosecond })
	if err := PutTyped(s, "typed", sample{}); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, ok, _ := GetTyped[sample](s, "typed"); ok {
		t.Error("expected expiry")
	}
}

func TestPutTypedMarshalError(t *testing.T) {
	s := newTestStore(t)
	if err := PutTyped(s, "bad", json.RawMessage("{")); err == nil {
		t.Error("expected marshal error")
	}
}
