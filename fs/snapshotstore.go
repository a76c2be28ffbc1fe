// Package fs provides flat-file storage for snapshots and reports.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rmehra/pricekart"
)

// Ensure SnapshotStore implements pricekart.SnapshotStore at compile time.
var _ pricekart.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore implements pricekart.SnapshotStore with atomic update
// semantics. Snapshots are saved to a temporary directory, then moved
// atomically on Commit.
type SnapshotStore struct {
	baseDir string
	name    string
}

// NewSnapshotStore creates a new SnapshotStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewSnapshotStore(baseDir, name string) *SnapshotStore {
	return &SnapshotStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *SnapshotStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *SnapshotStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Dir returns the committed snapshot directory.
func (s *SnapshotStore) Dir() string {
	return s.finalDir()
}

// Save writes one rendered page to the pending temporary directory.
func (s *SnapshotStore) Save(ctx context.Context, page *pricekart.RenderedPage) error {
	if page.Site == pricekart.SiteUnknown {
		return pricekart.Errorf(pricekart.EINVALID, "snapshot requires a site")
	}

	name := page.Label
	if name == "" {
		fetchedAt := page.FetchedAt
		if fetchedAt.IsZero() {
			fetchedAt = time.Now()
		}
		name = page.Site.Slug() + "-" + fetchedAt.UTC().Format("20060102-150405") + ".html"
	}
	name = SafeFilename(name)

	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.tempDir(), name), []byte(page.HTML), 0644)
}

// Commit atomically replaces the final directory with the pending one.
func (s *SnapshotStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the pending directory.
func (s *SnapshotStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SafeFilename flattens a label into a single safe file name component.
func SafeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeChars.ReplaceAllString(name, "-")
	return strings.Trim(name, "-")
}

// Prune removes files under dir older than maxAge, recursing into
// subdirectories, and returns how many were removed. A missing directory
// is not an error.
func Prune(dir string, maxAge time.Duration) (int, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}
