package engine

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// SnapshotStore persists the resumable session snapshot as JSON under
// the user's home directory. All failures are logged and swallowed: a
// broken snapshot file must never block a new session.
type SnapshotStore struct {
	filePath string
	logger   *log.Logger
}

func NewSnapshotStore(logger *log.Logger) *SnapshotStore {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return &SnapshotStore{
		filePath: filepath.Join(homeDir, ".circuit-coach", "session_snapshot.json"),
		logger:   logger,
	}
}

// NewSnapshotStoreAt uses an explicit file path instead of the default
// home-directory location.
func NewSnapshotStoreAt(filePath string, logger *log.Logger) *SnapshotStore {
	return &SnapshotStore{filePath: filePath, logger: logger}
}

// Load reads the saved snapshot. The second return value is false when
// no usable snapshot exists.
func (s *SnapshotStore) Load() (Snapshot, bool) {
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		s.logger.Printf("SnapshotStore: load %s (no existing file)", s.filePath)
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.logger.Printf("SnapshotStore: load %s failed to parse: %v", s.filePath, err)
		return Snapshot{}, false
	}
	if snap.PlanName == "" {
		s.logger.Printf("SnapshotStore: load %s has no plan name, ignoring", s.filePath)
		return Snapshot{}, false
	}
	s.logger.Printf("SnapshotStore: load %s -> %s in %s", s.filePath, snap.PlanName, snap.Phase)
	return snap, true
}

// Save writes the snapshot, creating the directory if needed.
func (s *SnapshotStore) Save(snap Snapshot) {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		s.logger.Printf("SnapshotStore: save mkdir failed: %v", err)
		return
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		s.logger.Printf("SnapshotStore: save marshal failed: %v", err)
		return
	}
	if err := os.WriteFile(s.filePath, raw, 0644); err != nil {
		s.logger.Printf("SnapshotStore: save %s failed: %v", s.filePath, err)
		return
	}
	s.logger.Printf("SnapshotStore: save %s -> %s in %s", s.filePath, snap.PlanName, snap.Phase)
}

// Clear removes the saved snapshot, typically after a session completes.
func (s *SnapshotStore) Clear() {
	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		s.logger.Printf("SnapshotStore: clear %s failed: %v", s.filePath, err)
		return
	}
	s.logger.Printf("SnapshotStore: cleared %s", s.filePath)
}
