// Package backup keeps rotating snapshots of the storage file. A snapshot is
// taken automatically before a destructive import so a bad file never costs
// the whole garden log.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// MaxSnapshots is how many snapshots are retained before rotation.
	MaxSnapshots = 14
	snapshotDir  = "backups"
	snapshotPre  = "growlog-"
)

// SnapshotInfo describes one retained snapshot.
type SnapshotInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots one storage file into a sibling backups directory.
type Manager struct {
	storePath string
	dir       string
	suffix    string
}

func NewManager(storePath string) *Manager {
	return &Manager{
		storePath: storePath,
		dir:       filepath.Join(filepath.Dir(storePath), snapshotDir),
		suffix:    filepath.Ext(storePath),
	}
}

// Dir returns the snapshot directory path.
func (m *Manager) Dir() string {
	return m.dir
}

// CreateSnapshot copies the storage file into the snapshot directory under a
// timestamped name and rotates out snapshots beyond the retention limit.
func (m *Manager) CreateSnapshot() (string, error) {
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("storage file does not exist: %s", m.storePath)
	}

	name := snapshotPre + time.Now().Format("20060102-150405") + m.suffix
	path := filepath.Join(m.dir, name)

	counter := 1
	for {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s",
			snapshotPre, time.Now().Format("20060102-150405"), counter, m.suffix))
		counter++
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique snapshot filename")
		}
	}

	if err := copyFile(m.storePath, path); err != nil {
		return "", fmt.Errorf("failed to copy storage file: %w", err)
	}

	if err := m.rotate(); err != nil {
		// Rotation failure should not fail the snapshot itself.
		fmt.Fprintf(os.Stderr, "Warning: failed to rotate old snapshots: %v\n", err)
	}

	return path, nil
}

// ListSnapshots returns retained snapshots, newest first.
func (m *Manager) ListSnapshots() ([]SnapshotInfo, error) {
	if _, err := os.Stat(m.dir); os.IsNotExist(err) {
		return []SnapshotInfo{}, nil
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	var snapshots []SnapshotInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, snapshotPre) || !strings.HasSuffix(name, m.suffix) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, snapshotPre), m.suffix)
		if i := strings.LastIndex(stamp, "-"); i > 0 && len(stamp)-i-1 < 4 {
			// Trailing collision counter, not part of the timestamp.
			stamp = stamp[:i]
		}
		ts, err := time.Parse("20060102-150405", stamp)
		if err != nil {
			continue
		}

		path := filepath.Join(m.dir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		snapshots = append(snapshots, SnapshotInfo{
			Path:      path,
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Timestamp.After(snapshots[j].Timestamp)
	})
	return snapshots, nil
}

func (m *Manager) rotate() error {
	snapshots, err := m.ListSnapshots()
	if err != nil {
		return err
	}
	for i := MaxSnapshots; i < len(snapshots); i++ {
		if err := os.Remove(snapshots[i].Path); err != nil {
			return fmt.Errorf("failed to remove old snapshot %s: %w", snapshots[i].Path, err)
		}
	}
	return nil
}

// RestoreSnapshot replaces the storage file with a snapshot, snapshotting the
// current file first. The swap goes through a temp file and atomic rename.
func (m *Manager) RestoreSnapshot(snapshotPath string) error {
	if _, err := os.Stat(snapshotPath); os.IsNotExist(err) {
		return fmt.Errorf("snapshot does not exist: %s", snapshotPath)
	}

	if _, err := os.Stat(m.storePath); err == nil {
		if _, err := m.CreateSnapshot(); err != nil {
			return fmt.Errorf("failed to snapshot current storage before restore: %w", err)
		}
	}

	tmp := m.storePath + ".restore.tmp"
	if err := copyFile(snapshotPath, tmp); err != nil {
		return fmt.Errorf("failed to copy snapshot: %w", err)
	}
	if err := os.Rename(tmp, m.storePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to restore storage: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
