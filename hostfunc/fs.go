package hostfunc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// MountMode defines the permission level for a mount point.
type MountMode int

const (
	// MountReadOnly allows only read operations.
	MountReadOnly MountMode = iota
	// MountReadWrite allows read and write operations.
	MountReadWrite
)

// Mount maps a virtual path seen by script code to a host path.
type Mount struct {
	VirtualPath string
	HostPath    string
	Mode        MountMode
}

const (
	DefaultFSMaxFileSize  = 10 * 1024 * 1024
	DefaultFSMaxWriteSize = 10 * 1024 * 1024
)

// FS provides file host functions restricted to explicit mount points.
type FS struct {
	mounts       []Mount
	maxFileSize  int64
	maxWriteSize int64
}

// FSOption configures an FS.
type FSOption func(*FS)

func WithMaxFileSize(size int64) FSOption {
	return func(f *FS) { f.maxFileSize = size }
}

func WithMaxWriteSize(size int64) FSOption {
	return func(f *FS) { f.maxWriteSize = size }
}

// NewFS creates a filesystem handler with the given mount points.
func NewFS(mounts []Mount, opts ...FSOption) *FS {
	normalized := make([]Mount, 0, len(mounts))
	for _, m := range mounts {
		vp := "/" + strings.Trim(m.VirtualPath, "/")
		hp, err := filepath.Abs(m.HostPath)
		if err != nil {
			continue
		}
		normalized = append(normalized, Mount{
			VirtualPath: vp,
			HostPath:    hp,
			Mode:        m.Mode,
		})
	}

	f := &FS{
		mounts:       normalized,
		maxFileSize:  DefaultFSMaxFileSize,
		maxWriteSize: DefaultFSMaxWriteSize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// resolve maps a virtual path to a host path, checking mount
// permissions and rejecting escapes via "..".
func (f *FS) resolve(virtualPath string, needWrite bool) (string, error) {
	vp := filepath.Clean("/" + strings.TrimPrefix(virtualPath, "/"))

	for _, m := range f.mounts {
		if vp != m.VirtualPath && !strings.HasPrefix(vp, m.VirtualPath+"/") {
			continue
		}
		if needWrite && m.Mode == MountReadOnly {
			return "", errors.New("permission denied: read-only mount")
		}

		relPath := strings.TrimPrefix(vp, m.VirtualPath)
		if relPath == "" {
			relPath = "/"
		}

		hostPath, err := filepath.Abs(filepath.Join(m.HostPath, relPath))
		if err != nil {
			return "", errors.New("invalid path")
		}
		if hostPath != m.HostPath && !strings.HasPrefix(hostPath, m.HostPath+string(filepath.Separator)) {
			return "", errors.New("permission denied: path escape attempt")
		}
		return hostPath, nil
	}

	return "", errors.New("permission denied: path not in any mount")
}

// Read returns the contents of the file at args[0].
func (f *FS) Read(args []string) (string, error) {
	if len(args) < 1 {
		return "", errors.New("path required")
	}
	path := args[0]

	hostPath, err := f.resolve(path, false)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(hostPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New("file not found: " + path)
		}
		return "", errors.New("stat error: " + err.Error())
	}
	if info.Size() > f.maxFileSize {
		return "", errors.New("file exceeds max size")
	}

	data, err := os.ReadFile(hostPath)
	if err != nil {
		return "", errors.New("read error: " + err.Error())
	}
	return string(data), nil
}

// Write stores args[1] into the file at args[0].
func (f *FS) Write(args []string) (string, error) {
	if len(args) < 2 {
		return "", errors.New("path and content required")
	}
	path, content := args[0], args[1]

	if int64(len(content)) > f.maxWriteSize {
		return "", errors.New("content exceeds max size")
	}

	hostPath, err := f.resolve(path, true)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(hostPath, []byte(content), 0o644); err != nil {
		return "", errors.New("write error: " + err.Error())
	}
	return "ok", nil
}

// Exists reports whether args[0] names an existing file or directory.
func (f *FS) Exists(args []string) (string, error) {
	if len(args) < 1 {
		return "", errors.New("path required")
	}

	hostPath, err := f.resolve(args[0], false)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(hostPath); err != nil {
		if os.IsNotExist(err) {
			return "false", nil
		}
		return "", errors.New("stat error: " + err.Error())
	}
	return "true", nil
}
