package filesystem

import (
	"fmt"
	"os"

	krfs "github.com/kr/fs"
	"github.com/pkg/sftp"
)

// sftpClient is the part of *sftp.Client the filesystem uses. The client
// also satisfies krfs.FileSystem (ReadDir, Lstat, Join), which is what the
// scanner walks.
type sftpClient interface {
	krfs.FileSystem
	Create(path string) (*sftp.File, error)
	MkdirAll(path string) error
	OpenFile(path string, flags int) (*sftp.File, error)
	Stat(path string) (os.FileInfo, error)
}

// SFTPFileSystem implements FileSystem over an SFTP session.
type SFTPFileSystem struct {
	client sftpClient
}

// NewSFTPFileSystem creates an SFTP filesystem using an established connection.
func NewSFTPFileSystem(conn *SFTPConnection) *SFTPFileSystem {
	return &SFTPFileSystem{client: conn.Client()}
}

// Create creates or truncates a remote file.
func (fs *SFTPFileSystem) Create(path string) (File, error) {
	file, err := fs.client.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote file %s: %w", path, err)
	}

	return file, nil
}

// Join joins remote path elements with forward slashes.
func (fs *SFTPFileSystem) Join(elem ...string) string {
	return fs.client.Join(elem...)
}

// MkdirAll creates a remote directory and all necessary parents.
// SFTP does not carry a creation mode, so perm is ignored.
func (fs *SFTPFileSystem) MkdirAll(path string, _ os.FileMode) error {
	err := fs.client.MkdirAll(path)
	if err != nil {
		return fmt.Errorf("failed to create remote directory %s: %w", path, err)
	}

	return nil
}

// OpenAppend opens a remote file for appending, creating it if needed.
func (fs *SFTPFileSystem) OpenAppend(path string) (File, error) {
	file, err := fs.client.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE)
	if err != nil {
		return nil, fmt.Errorf("failed to open remote file %s for append: %w", path, err)
	}

	return file, nil
}

// Scan walks a remote directory tree.
func (fs *SFTPFileSystem) Scan(root string) FileScanner {
	if fs.client == nil {
		return newErrorScanner(fmt.Errorf("no SFTP session for %s", root)) //nolint:err113 // includes the root being scanned
	}

	start := throughLink(root, "/")

	return newWalkScanner(krfs.WalkFS(start, fs.client), root, start, remoteRelativePath)
}

// Stat returns remote file information.
func (fs *SFTPFileSystem) Stat(path string) (os.FileInfo, error) {
	info, err := fs.client.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat remote file %s: %w", path, err)
	}

	return info, nil
}
