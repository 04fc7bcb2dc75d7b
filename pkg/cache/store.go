// Package cache is a small disk-backed key/value store. calcpad keeps the
// suspended calculator session in it so a later run can resume.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StoreConfig holds configuration for a Store.
type StoreConfig struct {
	// Dir is where entries are stored. Created with 0755 if missing.
	Dir string

	// DefaultTTL applies to Put. Zero means entries never expire.
	DefaultTTL time.Duration

	// CleanupInterval is how often expired entries are swept in the
	// background. Zero disables the sweeper.
	CleanupInterval time.Duration

	// Logger receives sweep and corruption reports. Nil discards them.
	Logger *zap.Logger
}

// entryMeta is persisted next to each entry's data file.
type entryMeta struct {
	Key     string `json:"key"`
	Created int64  `json:"created"` // UnixNano
	TTLNS   int64  `json:"ttl_ns"`  // 0 = no TTL
	Size    int64  `json:"size"`
}

// Store keeps each entry as {hash}.data plus {hash}.meta. Writes go
// through a temp file and rename so a crash never leaves a torn entry.
type Store struct {
	cfg StoreConfig
	log *zap.Logger

	mu   sync.Mutex
	keys map[string]string // hash -> key

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewStore opens the store at cfg.Dir, dropping expired, orphaned and
// corrupt entries left by earlier runs.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.DefaultTTL < 0 {
		cfg.DefaultTTL = 0
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create directory %s: %w", cfg.Dir, err)
	}

	s := &Store{
		cfg:  cfg,
		log:  log,
		keys: make(map[string]string),
		done: make(chan struct{}),
	}
	if err := s.scanDir(); err != nil {
		return nil, fmt.Errorf("cache: scan directory: %w", err)
	}

	if cfg.CleanupInterval > 0 {
		s.wg.Add(1)
		go s.cleanupLoop()
	}
	return s, nil
}

// Get returns the bytes stored under key. Missing and expired entries
// report false.
func (s *Store) Get(key string) ([]byte, bool) {
	h := hashKey(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keys[h]; !ok {
		return nil, false
	}
	meta, err := s.readMeta(h)
	if err != nil || isExpired(meta) {
		s.removeLocked(h)
		return nil, false
	}
	data, err := os.ReadFile(s.dataPath(h))
	if err != nil {
		s.removeLocked(h)
		return nil, false
	}
	return data, true
}

// Put stores value under key with the default TTL.
func (s *Store) Put(key string, value []byte) error {
	return s.PutWithTTL(key, value, s.cfg.DefaultTTL)
}

// PutWithTTL stores value under key. A ttl of 0 never expires.
func (s *Store) PutWithTTL(key string, value []byte, ttl time.Duration) error {
	h := hashKey(key)
	metaBytes, err := json.Marshal(entryMeta{
		Key:     key,
		Created: time.Now().UnixNano(),
		TTLNS:   int64(ttl),
		Size:    int64(len(value)),
	})
	if err != nil {
		return fmt.Errorf("cache: marshal meta for %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := atomicWrite(s.dataPath(h), value, s.cfg.Dir); err != nil {
		return fmt.Errorf("cache: write data for %q: %w", key, err)
	}
	if err := atomicWrite(s.metaPath(h), metaBytes, s.cfg.Dir); err != nil {
		_ = os.Remove(s.dataPath(h))
		return fmt.Errorf("cache: write meta for %q: %w", key, err)
	}
	s.keys[h] = key
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	h := hashKey(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keys[h]; !ok {
		return nil
	}
	s.removeLocked(h)
	return nil
}

// Has reports whether key exists and is not expired.
func (s *Store) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Len returns the number of indexed entries, expired ones included until
// the next sweep.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

// Close stops the background sweeper. It is safe to call more than once.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
	return nil
}

// hashKey maps a key to a 16-hex-character file name stem.
func hashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:8])
}

func (s *Store) dataPath(hash string) string {
	return filepath.Join(s.cfg.Dir, hash+".data")
}

func (s *Store) metaPath(hash string) string {
	return filepath.Join(s.cfg.Dir, hash+".meta")
}

func (s *Store) readMeta(hash string) (entryMeta, error) {
	var m entryMeta
	data, err := os.ReadFile(s.metaPath(hash))
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, err
	}
	return m, nil
}

func isExpired(m entryMeta) bool {
	if m.TTLNS <= 0 {
		return false
	}
	return time.Since(time.Unix(0, m.Created)) > time.Duration(m.TTLNS)
}

// removeLocked deletes an entry's files. Caller holds s.mu.
func (s *Store) removeLocked(hash string) {
	delete(s.keys, hash)
	_ = os.Remove(s.dataPath(hash))
	_ = os.Remove(s.metaPath(hash))
}

// scanDir rebuilds the index from .meta files on disk.
func (s *Store) scanDir() error {
	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(name, ".tmp-") {
			_ = os.Remove(filepath.Join(s.cfg.Dir, name))
			continue
		}
		if !strings.HasSuffix(name, ".meta") {
			continue
		}

		hash := strings.TrimSuffix(name, ".meta")
		if _, err := os.Stat(s.dataPath(hash)); err != nil {
			_ = os.Remove(s.metaPath(hash))
			continue
		}
		meta, err := s.readMeta(hash)
		if err != nil {
			s.log.Warn("dropping corrupt cache entry", zap.String("hash", hash), zap.Error(err))
			s.removeLocked(hash)
			continue
		}
		if isExpired(meta) {
			s.removeLocked(hash)
			continue
		}
		s.keys[hash] = meta.Key
	}
	return nil
}

func (s *Store) cleanupLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweepExpired()
		}
	}
}

// sweepExpired removes all expired entries.
func (s *Store) sweepExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for h := range s.keys {
		meta, err := s.readMeta(h)
		if err != nil || isExpired(meta) {
			s.removeLocked(h)
			removed++
		}
	}
	if removed > 0 {
		s.log.Debug("swept expired cache entries", zap.Int("count", removed))
	}
}

// atomicWrite writes data to path via a temporary file and rename.
func atomicWrite(path string, data []byte, tmpDir string) error {
	tmp, err := os.CreateTemp(tmpDir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	success = true
	return nil
}
