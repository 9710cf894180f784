package storage

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

// SweepTemp deletes temp artifacts older than maxAge and returns how
// many were removed. It only ever touches the temp directory: generated
// payloads belong to their certificate records and are released on
// record deletion, never by the sweeper.
func (s *Store) SweepTemp(maxAge time.Duration) (int, error) {
	dir := filepath.Join(s.root, categoryTemp)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			log.Printf("⚠️ Sweeper: could not remove %s: %v", e.Name(), err)
			continue
		}
		removed++
	}
	return removed, nil
}

// RunSweeper periodically sweeps temp artifacts until stop is closed
func (s *Store) RunSweeper(interval, maxAge time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := s.SweepTemp(maxAge)
			if err != nil {
				log.Printf("⚠️ Sweeper: sweep failed: %v", err)
			} else if n > 0 {
				log.Printf("🧹 Sweeper: removed %d stale temp artifact(s)", n)
			}
		case <-stop:
			return
		}
	}
}
