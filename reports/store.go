// Package reports persists finished assessment reports as JSON blobs on
// disk, keyed by generated id.
package reports

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/aeo-assessment/backend/assessment"
)

// Store is a file-backed put/get blob store for reports.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore creates the backing directory if needed.
func NewStore(dataDir string) (*Store, error) {
	dir := filepath.Join(dataDir, "reports")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Put persists the report and returns its id.
func (s *Store) Put(report *assessment.Report) (string, error) {
	id := uuid.NewString()

	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Write to a temporary file first, then rename (atomic on POSIX).
	path := s.path(id)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to finalize report: %w", err)
	}

	return id, nil
}

// Get loads a stored report. The boolean reports whether it exists.
func (s *Store) Get(id string) (*assessment.Report, bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read report %s: %w", id, err)
	}

	var report assessment.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false, fmt.Errorf("failed to decode report %s: %w", id, err)
	}
	return &report, true, nil
}

func (s *Store) path(id string) string {
	// Ids are validated uuids, but keep path traversal impossible anyway.
	return filepath.Join(s.dir, strings.ReplaceAll(id, string(filepath.Separator), "")+".json")
}
