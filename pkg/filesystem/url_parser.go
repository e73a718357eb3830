package filesystem

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultSFTPPort is used when an sftp:// URL carries no port.
const DefaultSFTPPort = 22

const sftpScheme = "sftp://"

// Errors returned by ParsePath for malformed SFTP URLs.
var (
	ErrMissingUser = errors.New("SFTP URL must include username (sftp://user@host/path)")
	ErrMissingHost = errors.New("SFTP URL must include host")
)

// ParsedPath is a scan root: either a local path or a remote SFTP location.
type ParsedPath struct {
	IsRemote bool

	// Path is the local path, or the path on the remote host.
	Path string

	// SFTP only.
	Host string
	Port int
	User string
}

// String renders the path the way a user would type it.
func (p ParsedPath) String() string {
	if !p.IsRemote {
		return p.Path
	}

	remote := "/" + p.Path
	if p.Path == "." {
		remote = ""
	}

	host := p.Host
	if p.Port != DefaultSFTPPort {
		host = fmt.Sprintf("%s:%d", p.Host, p.Port)
	}

	return fmt.Sprintf("%s%s@%s%s", sftpScheme, p.User, host, remote)
}

// ParsePath detects whether raw is a local path or an SFTP URL.
// SFTP URLs have the format sftp://user@host[:port]/path:
//   - sftp://joe@myserver.com/data   → "data" relative to the login directory
//   - sftp://joe@myserver.com//srv   → absolute "/srv"
//   - sftp://joe@myserver.com        → the login directory itself
func ParsePath(raw string) (ParsedPath, error) {
	if !strings.HasPrefix(raw, sftpScheme) {
		return ParsedPath{Path: raw}, nil
	}

	u, err := url.Parse(raw) //nolint:varnamelen // u is idiomatic for URL
	if err != nil {
		return ParsedPath{}, fmt.Errorf("invalid SFTP URL: %w", err)
	}

	if u.User == nil || u.User.Username() == "" {
		return ParsedPath{}, ErrMissingUser
	}

	if u.Hostname() == "" {
		return ParsedPath{}, ErrMissingHost
	}

	port := DefaultSFTPPort
	if portStr := u.Port(); portStr != "" {
		port, err = strconv.Atoi(portStr)
		if err != nil {
			return ParsedPath{}, fmt.Errorf("invalid port number: %w", err)
		}
	}

	return ParsedPath{
		IsRemote: true,
		Path:     remotePath(u.Path),
		Host:     u.Hostname(),
		Port:     port,
		User:     u.User.Username(),
	}, nil
}

// remotePath maps the URL path onto the SFTP session's path convention:
// one leading slash means "relative to home", two mean absolute.
func remotePath(urlPath string) string {
	switch {
	case urlPath == "" || urlPath == "/":
		return "."
	case strings.HasPrefix(urlPath, "//"):
		return urlPath[1:]
	default:
		return strings.TrimPrefix(urlPath, "/")
	}
}
