package vscroll

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Snapshot is a plain, JSON-serializable capture of a scroll location.
// It records the first visible index plus the offset into that item in
// actual (uncompressed) space, so restoring is exact across a
// destroy/recreate cycle even if the compression regime differs.
// SelectionIDs is carried for the host's selection layer; the engine
// never interprets it.
type Snapshot struct {
	Index        int      `json:"index"`
	OffsetInItem float64  `json:"offsetInItem"`
	SelectionIDs []string `json:"selectionIds,omitempty"`
}

// Snapshot captures the current scroll location.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{}
	if c.vp.VisibleRange.IsEmpty() {
		return snap
	}
	snap.Index = c.vp.VisibleRange.Start

	actualPos := c.vp.ScrollPosition / c.cs.Ratio
	offset := actualPos - c.hc.OffsetOf(snap.Index)
	snap.OffsetInItem = clampf(offset, 0, c.hc.HeightOf(snap.Index))
	return snap
}

// Restore scrolls back to a previously captured location. The target is
// derived from the snapshot's index and in-item offset, converted into
// the current coordinate space; an in-progress animation is cancelled.
func (c *Controller) Restore(snap Snapshot) {
	c.mu.Lock()
	if c.destroyed || c.hc.Total() == 0 {
		c.mu.Unlock()
		return
	}
	c.cancelAnimLocked()
	index := clampi(snap.Index, 0, c.hc.Total()-1)
	target := scrollTargetFor(index, AlignStart, c.vp.ContainerExtent, c.blend, c.hc, c.cs)
	target += clampf(snap.OffsetInItem, 0, c.hc.HeightOf(index)) * c.cs.Ratio
	d := c.setPositionLocked(target)
	c.mu.Unlock()
	d.deliver()
}

// SnapshotStore persists scroll snapshots to a JSON file with a content
// hash for integrity checks, enabling position recovery across process
// restarts and not just controller recreation.
type SnapshotStore struct {
	path string
	mu   sync.Mutex
}

// storedSnapshot is the serialized representation written to disk.
type storedSnapshot struct {
	Timestamp time.Time           `json:"timestamp"`
	Hash      string              `json:"hash"`
	Views     map[string]Snapshot `json:"views"`
}

// NewSnapshotStore creates a store writing to the given file path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Save writes the snapshots keyed by view name, replacing the previous
// contents atomically.
func (s *SnapshotStore) Save(views map[string]Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := storedSnapshot{
		Timestamp: time.Now().UTC(),
		Views:     views,
		Hash:      hashViews(views),
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshots: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshots: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshots: %w", err)
	}
	return nil
}

// Load reads the stored snapshots. A missing file yields an empty map; a
// hash mismatch is reported as an error and the contents are discarded.
func (s *SnapshotStore) Load() (map[string]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshots: %w", err)
	}

	var stored storedSnapshot
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("unmarshal snapshots: %w", err)
	}
	if stored.Hash != hashViews(stored.Views) {
		return nil, fmt.Errorf("snapshot file %s failed integrity check", s.path)
	}
	if stored.Views == nil {
		stored.Views = map[string]Snapshot{}
	}
	return stored.Views, nil
}

// hashViews computes a deterministic digest over the snapshot contents.
func hashViews(views map[string]Snapshot) string {
	keys := make([]string, 0, len(views))
	for k := range views {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	hasher := sha1.New()
	for _, k := range keys {
		v := views[k]
		fmt.Fprintf(hasher, "%s:%d:%.6f", k, v.Index, v.OffsetInItem)
		for _, id := range v.SelectionIDs {
			hasher.Write([]byte(id))
		}
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
