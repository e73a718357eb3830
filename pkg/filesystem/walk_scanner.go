package filesystem

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	krfs "github.com/kr/fs"
)

// walkScanner implements FileScanner on top of a kr/fs walker. The same
// walker drives local disks (krfs.Walk), SFTP clients and the in-memory
// mock (krfs.WalkFS), so all three share one traversal.
//
// Entries are produced lazily, one Step per Next. Directory listings come
// back sorted by name, so the order is stable between runs. Symlinks are
// reported with their Lstat mode and never descended into, except for the
// root: a symlinked root is walked through (see throughLink).
type walkScanner struct {
	walker *krfs.Walker
	root   string
	start  string
	rel    func(root, target string) (string, error)
	err    error
	done   bool
}

// newWalkScanner wraps a walker started at start, which names the same
// directory as root. Relative paths are computed against root.
func newWalkScanner(walker *krfs.Walker, root, start string, rel func(root, target string) (string, error)) *walkScanner {
	return &walkScanner{
		walker: walker,
		root:   root,
		start:  start,
		rel:    rel,
	}
}

// throughLink appends sep to root so the walker's initial Lstat resolves a
// symlinked root to its directory. Children are joined onto it and cleaned,
// so they still read as root-joined paths.
func throughLink(root, sep string) string {
	if root == "" || strings.HasSuffix(root, sep) {
		return root
	}

	return root + sep
}

// newErrorScanner creates a scanner that yields nothing and reports err.
func newErrorScanner(err error) *walkScanner {
	return &walkScanner{err: err, done: true}
}

// Err returns the error that stopped the scan.
func (s *walkScanner) Err() error {
	return s.err
}

// Next advances to the next entry below the root.
func (s *walkScanner) Next() (FileInfo, bool) {
	for !s.done && s.walker.Step() {
		current := s.walker.Path()

		if walkErr := s.walker.Err(); walkErr != nil {
			if current == s.start {
				s.err = fmt.Errorf("failed to scan %s: %w", s.root, walkErr)
				break
			}

			return FileInfo{
				Path:         current,
				RelativePath: s.relative(current),
				Err:          walkErr,
			}, true
		}

		// The root is the starting point, not an entry.
		if current == s.start {
			continue
		}

		stat := s.walker.Stat()

		return FileInfo{
			Path:         current,
			RelativePath: s.relative(current),
			Size:         stat.Size(),
			ModTime:      stat.ModTime(),
			Mode:         stat.Mode(),
		}, true
	}

	s.done = true

	return FileInfo{}, false
}

// relative falls back to the full path when it cannot be made relative.
func (s *walkScanner) relative(target string) string {
	rel, err := s.rel(s.root, target)
	if err != nil {
		return target
	}

	return rel
}

// localRelativePath computes a relative path with OS separators.
func localRelativePath(root, target string) (string, error) {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", fmt.Errorf("failed to get relative path for %s: %w", target, err)
	}

	return rel, nil
}

// remoteRelativePath computes the relative path from root to target.
// Uses path package (not filepath) since SFTP always uses forward slashes.
func remoteRelativePath(root, target string) (string, error) {
	root = path.Clean(root)
	target = path.Clean(target)

	if root == "." {
		return target, nil
	}

	if root != "/" {
		root += "/"
	}

	if len(target) < len(root) || target[:len(root)] != root {
		return "", fmt.Errorf("target %s is not under root %s", target, root) //nolint:err113 // Path validation error with actual paths
	}

	relPath := target[len(root):]
	if relPath == "" {
		return ".", nil
	}

	return relPath, nil
}
