package filesystem

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	krfs "github.com/kr/fs"
)

// MockFileSystem is an in-memory filesystem implementation for testing.
// Paths use forward slashes. It implements krfs.FileSystem so scans run
// through the same walker as the real implementations.
type MockFileSystem struct {
	mu         sync.RWMutex
	files      map[string]*mockFile
	vanished   map[string]bool
	denyRead   map[string]bool
	denyWrites []string
}

// mockFile represents a file or directory in the mock filesystem.
type mockFile struct {
	data    []byte
	modTime time.Time
	isDir   bool
}

// mockFileInfo implements os.FileInfo for mock files.
type mockFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
}

func (fi *mockFileInfo) IsDir() bool        { return fi.isDir }
func (fi *mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.size }
func (fi *mockFileInfo) Sys() any           { return nil }

func (fi *mockFileInfo) Mode() os.FileMode {
	if fi.isDir {
		return os.ModeDir | 0o755 //nolint:mnd // conventional directory mode
	}

	return 0o644 //nolint:mnd // conventional file mode
}

// mockFileHandle writes straight through to the owning filesystem.
type mockFileHandle struct {
	fs     *MockFileSystem
	path   string
	closed bool
}

func (f *mockFileHandle) Close() error {
	if f.closed {
		return os.ErrClosed
	}

	f.closed = true

	return nil
}

func (f *mockFileHandle) Write(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}

	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	file, exists := f.fs.files[f.path]
	if !exists {
		return 0, &os.PathError{Op: "write", Path: f.path, Err: os.ErrNotExist}
	}

	file.data = append(file.data, p...)

	return len(p), nil
}

// NewMockFileSystem creates a new in-memory filesystem containing only "/".
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: map[string]*mockFile{
			"/": {isDir: true},
		},
		vanished: make(map[string]bool),
		denyRead: make(map[string]bool),
	}
}

// Create creates or truncates a file. The parent directory must exist.
func (fs *MockFileSystem) Create(name string) (File, error) {
	return fs.openForWrite("create", name, true)
}

// Join joins path elements with forward slashes.
func (fs *MockFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

// Lstat returns file information without the vanish simulation, the way a
// directory listing sees it.
func (fs *MockFileSystem) Lstat(name string) (os.FileInfo, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.infoLocked("lstat", path.Clean(name))
}

// MkdirAll creates a directory and all necessary parents.
func (fs *MockFileSystem) MkdirAll(name string, _ os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	name = path.Clean(name)
	if fs.writeDeniedLocked(name) {
		return &os.PathError{Op: "mkdir", Path: name, Err: os.ErrPermission}
	}

	return fs.mkdirAllLocked(name)
}

// OpenAppend opens a file for appending, creating it if needed.
func (fs *MockFileSystem) OpenAppend(name string) (File, error) {
	return fs.openForWrite("open", name, false)
}

// ReadDir lists the direct children of dirname sorted by name.
func (fs *MockFileSystem) ReadDir(dirname string) ([]os.FileInfo, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	dirname = path.Clean(dirname)

	dir, exists := fs.files[dirname]
	if !exists {
		return nil, &os.PathError{Op: "open", Path: dirname, Err: os.ErrNotExist}
	}

	if !dir.isDir {
		return nil, &os.PathError{Op: "readdir", Path: dirname, Err: fmt.Errorf("not a directory")} //nolint:err113 // mirrors ENOTDIR
	}

	if fs.denyRead[dirname] {
		return nil, &os.PathError{Op: "open", Path: dirname, Err: os.ErrPermission}
	}

	var children []string

	for p := range fs.files {
		if p != dirname && path.Dir(p) == dirname {
			children = append(children, p)
		}
	}

	sort.Strings(children)

	infos := make([]os.FileInfo, 0, len(children))

	for _, child := range children {
		info, err := fs.infoLocked("lstat", child)
		if err != nil {
			return nil, err
		}

		infos = append(infos, info)
	}

	return infos, nil
}

// Scan returns an iterator over every entry below root.
func (fs *MockFileSystem) Scan(root string) FileScanner {
	return newWalkScanner(krfs.WalkFS(root, fs), root, root, remoteRelativePath)
}

// Stat returns file information. Vanished files report os.ErrNotExist.
func (fs *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	name = path.Clean(name)
	if fs.vanished[name] {
		return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrNotExist}
	}

	return fs.infoLocked("stat", name)
}

func (fs *MockFileSystem) infoLocked(op, name string) (os.FileInfo, error) {
	file, exists := fs.files[name]
	if !exists {
		return nil, &os.PathError{Op: op, Path: name, Err: os.ErrNotExist}
	}

	return &mockFileInfo{
		name:    path.Base(name),
		size:    int64(len(file.data)),
		modTime: file.modTime,
		isDir:   file.isDir,
	}, nil
}

// mkdirAllLocked assumes the lock is held.
func (fs *MockFileSystem) mkdirAllLocked(name string) error {
	if name == "/" || name == "." {
		return nil
	}

	if existing, exists := fs.files[name]; exists {
		if !existing.isDir {
			return &os.PathError{Op: "mkdir", Path: name, Err: fmt.Errorf("not a directory")} //nolint:err113 // mirrors ENOTDIR
		}

		return nil
	}

	if err := fs.mkdirAllLocked(path.Dir(name)); err != nil {
		return err
	}

	fs.files[name] = &mockFile{isDir: true, modTime: time.Now()}

	return nil
}

func (fs *MockFileSystem) openForWrite(op, name string, truncate bool) (File, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	name = path.Clean(name)
	if fs.writeDeniedLocked(name) {
		return nil, &os.PathError{Op: op, Path: name, Err: os.ErrPermission}
	}

	parent, exists := fs.files[path.Dir(name)]
	if !exists || !parent.isDir {
		return nil, &os.PathError{Op: op, Path: name, Err: os.ErrNotExist}
	}

	existing, exists := fs.files[name]

	switch {
	case exists && existing.isDir:
		return nil, &os.PathError{Op: op, Path: name, Err: fmt.Errorf("is a directory")} //nolint:err113 // mirrors EISDIR
	case !exists || truncate:
		fs.files[name] = &mockFile{modTime: time.Now()}
	}

	return &mockFileHandle{fs: fs, path: name}, nil
}

func (fs *MockFileSystem) writeDeniedLocked(name string) bool {
	for _, prefix := range fs.denyWrites {
		if name == prefix || strings.HasPrefix(name, prefix+"/") {
			return true
		}
	}

	return false
}

// Helper methods for testing

// AddDir adds a directory (and any missing parents).
func (fs *MockFileSystem) AddDir(name string, modTime time.Time) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	name = path.Clean(name)
	_ = fs.mkdirAllLocked(path.Dir(name))
	fs.files[name] = &mockFile{isDir: true, modTime: modTime}
}

// AddFile adds a file with the given content and modtime, creating parents.
func (fs *MockFileSystem) AddFile(name string, content []byte, modTime time.Time) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	name = path.Clean(name)
	_ = fs.mkdirAllLocked(path.Dir(name))
	fs.files[name] = &mockFile{
		data:    append([]byte(nil), content...),
		modTime: modTime,
	}
}

// DenyRead makes listing dir fail with a permission error.
func (fs *MockFileSystem) DenyRead(dir string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.denyRead[path.Clean(dir)] = true
}

// DenyWrites makes every create, append or mkdir at or below prefix fail
// with a permission error.
func (fs *MockFileSystem) DenyWrites(prefix string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.denyWrites = append(fs.denyWrites, path.Clean(prefix))
}

// Exists checks if a path exists in the mock filesystem.
func (fs *MockFileSystem) Exists(name string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	_, exists := fs.files[path.Clean(name)]

	return exists
}

// GetFile retrieves a file's content.
func (fs *MockFileSystem) GetFile(name string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	file, exists := fs.files[path.Clean(name)]
	if !exists {
		return nil, os.ErrNotExist
	}

	if file.isDir {
		return nil, fmt.Errorf("%s is a directory", name) //nolint:err113 // test helper
	}

	return append([]byte(nil), file.data...), nil
}

// Vanish keeps name visible to directory listings but makes Stat report
// it missing, like a file deleted between enumeration and stat.
func (fs *MockFileSystem) Vanish(name string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.vanished[path.Clean(name)] = true
}
