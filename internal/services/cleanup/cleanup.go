package cleanup

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultMaxAge is how old a leftover temp file must be before it is removed.
// It is well above any single download or trim.
const DefaultMaxAge = 6 * time.Hour

// Service removes temp files that an interrupted download, trim or manifest
// write left behind: "<id>.m4a.part" and ".<name>.*.tmp".
type Service struct {
	dirs            []string
	maxAge          time.Duration
	cleanupInterval time.Duration
	cancel          context.CancelFunc
	done            chan struct{}
	mu              sync.Mutex
}

// NewService creates a sweeper over dirs
func NewService(dirs []string, maxAge, cleanupInterval time.Duration) *Service {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	if cleanupInterval <= 0 {
		cleanupInterval = time.Hour
	}
	return &Service{
		dirs:            dirs,
		maxAge:          maxAge,
		cleanupInterval: cleanupInterval,
	}
}

// Start sweeps once, then again every interval until ctx ends or Stop is called
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	s.Sweep()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-ctx.Done():
				log.Println("[INFO] Cleanup service stopped")
				return
			}
		}
	}()

	log.Printf("[INFO] Cleanup service started (interval: %v, max age: %v)", s.cleanupInterval, s.maxAge)
}

// Stop ends the periodic sweep and waits for it to exit
func (s *Service) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Sweep removes stale temp files and returns how many were removed
func (s *Service) Sweep() int {
	removed := 0
	now := time.Now()

	for _, dir := range s.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Printf("[WARN] Cleanup could not read %s: %v", dir, err)
			}
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !IsTempFile(entry.Name()) {
				continue
			}
			info, err := entry.Info()
			if err != nil || now.Sub(info.ModTime()) <= s.maxAge {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			log.Printf("[DEBUG] Removing stale temp file: %s", path)
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				log.Printf("[WARN] Failed to remove temp file %s: %v", path, err)
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		log.Printf("[INFO] Removed %d stale temp file(s)", removed)
	}
	return removed
}

// IsTempFile reports whether name is an in-progress artifact rather than a finished one
func IsTempFile(name string) bool {
	if strings.HasSuffix(name, ".part") {
		return true
	}
	return strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".tmp")
}
