// Package backup keeps rotating snapshots of the SQLite database next to it.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/logger"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// ErrNoDatabase is returned when there is no database file to back up.
var ErrNoDatabase = errors.New("database does not exist")

// Info describes one backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

func (i Info) Name() string {
	return filepath.Base(i.Path)
}

// Manager handles backup operations
type Manager struct {
	dbPath    string
	backupDir string
	keep      int
	now       func() time.Time
	log       *log.Logger
}

type Option func(*Manager)

// WithClock replaces time.Now for naming backups.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithRetention changes how many backups rotation keeps.
func WithRetention(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.keep = n
		}
	}
}

// NewManager creates a manager for the database at dbPath. Backups live in
// a directory beside it.
func NewManager(dbPath string, opts ...Option) *Manager {
	m := &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		keep:      constants.MaxBackups,
		now:       time.Now,
		log:       logger.Named("backup"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Dir() string {
	return m.backupDir
}

func (m *Manager) Retention() int {
	return m.keep
}

// Create snapshots the database and rotates old backups.
func (m *Manager) Create() (Info, error) {
	return m.create(true)
}

func (m *Manager) create(rotate bool) (Info, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return Info{}, fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return Info{}, fmt.Errorf("%w: %s", ErrNoDatabase, m.dbPath)
	}

	path, ts, err := m.nextPath()
	if err != nil {
		return Info{}, err
	}
	if err := m.snapshot(path); err != nil {
		return Info{}, fmt.Errorf("failed to backup database: %w", err)
	}

	if rotate {
		if err := m.rotate(); err != nil {
			m.log.Warn("failed to rotate old backups", "error", err)
		}
	}

	st, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	m.log.Info("backup created", "path", path, "size", st.Size())
	return Info{Path: path, Timestamp: ts, Size: st.Size()}, nil
}

// nextPath picks an unused file name, falling back to second precision and
// then a counter when backups are taken in quick succession.
func (m *Manager) nextPath() (string, time.Time, error) {
	now := m.now()
	ts := now.Truncate(time.Minute)
	path := m.fileName(now.Format(minuteLayout))
	if !exists(path) {
		return path, ts, nil
	}

	stamp := now.Format(secondLayout)
	ts = now.Truncate(time.Second)
	path = m.fileName(stamp)
	for n := 1; exists(path); n++ {
		if n > 100 {
			return "", time.Time{}, fmt.Errorf("failed to generate unique backup filename")
		}
		path = m.fileName(fmt.Sprintf("%s-%d", stamp, n))
	}
	return path, ts, nil
}

func (m *Manager) fileName(stamp string) string {
	return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// snapshot writes a consistent copy of the database with VACUUM INTO,
// falling back to a plain file copy.
func (m *Manager) snapshot(dest string) error {
	src, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer src.Close()

	if err := verify(src); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := src.Exec("VACUUM INTO ?", dest); err != nil {
		m.log.Debug("VACUUM INTO failed, copying file", "error", err)
		src.Close()
		return copyFile(m.dbPath, dest)
	}
	return nil
}

// List returns all backups, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseName extracts the timestamp from a backup file name such as
// tracker-20240103-1200.db or tracker-20240103-120005-2.db.
func parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	parts := strings.Split(stamp, "-")
	if len(parts) == 3 && isDigits(parts[2]) {
		stamp = parts[0] + "-" + parts[1]
	}

	for _, layout := range []string{minuteLayout, secondLayout} {
		if ts, err := time.Parse(layout, stamp); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// rotate removes backups beyond the retention limit, oldest first.
func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := m.keep; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
		m.log.Debug("old backup removed", "path", backups[i].Path)
	}
	return nil
}

// Resolve finds a backup given an absolute path, a path relative to the
// working directory, or a bare file name inside the backup directory.
func (m *Manager) Resolve(ref string) (string, error) {
	if filepath.IsAbs(ref) {
		if !exists(ref) {
			return "", fmt.Errorf("backup file not found: %s", ref)
		}
		return ref, nil
	}
	if exists(ref) {
		return filepath.Abs(ref)
	}
	if candidate := filepath.Join(m.backupDir, ref); exists(candidate) {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", m.backupDir)
}

// Restore replaces the database with the backup at path. The current
// database is snapshotted first; that snapshot is returned when one was made.
func (m *Manager) Restore(path string) (*Info, error) {
	if !exists(path) {
		return nil, fmt.Errorf("backup file does not exist: %s", path)
	}
	if err := verifyFile(path); err != nil {
		return nil, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous *Info
	if exists(m.dbPath) {
		info, err := m.create(false)
		if err != nil {
			return nil, fmt.Errorf("failed to backup current database before restore: %w", err)
		}
		previous = &info
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return previous, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			m.log.Warn("failed to remove temporary file", "path", tmp, "error", rmErr)
		}
		return previous, fmt.Errorf("failed to restore database: %w", err)
	}

	m.log.Info("database restored", "from", path)
	return previous, nil
}

func verify(db *sql.DB) error {
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func verifyFile(path string) error {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	return verify(db)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
