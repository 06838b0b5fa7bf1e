package hostfunc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestFS(t *testing.T, mode MountMode, opts ...FSOption) (*FS, string) {
	t.Helper()
	dir := t.TempDir()
	fs := NewFS([]Mount{{VirtualPath: "/data", HostPath: dir, Mode: mode}}, opts...)
	return fs, dir
}

func TestFSRead(t *testing.T) {
	fs, dir := newTestFS(t, MountReadOnly)

	if err := os.WriteFile(filepath.Join(dir, "config.js"), []byte("var x = 1;"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := fs.Read([]string{"/data/config.js"})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "var x = 1;" {
		t.Errorf("expected file contents, got %q", got)
	}
}

func TestFSReadMissing(t *testing.T) {
	fs, _ := newTestFS(t, MountReadOnly)

	_, err := fs.Read([]string{"/data/missing.js"})
	if err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Errorf("expected file-not-found error, got %v", err)
	}
}

func TestFSReadOutsideMount(t *testing.T) {
	fs, _ := newTestFS(t, MountReadOnly)

	if _, err := fs.Read([]string{"/etc/passwd"}); err == nil {
		t.Error("expected permission error outside mount")
	}
}

func TestFSReadEscapeAttempt(t *testing.T) {
	fs, _ := newTestFS(t, MountReadOnly)

	if _, err := fs.Read([]string{"/data/../../etc/passwd"}); err == nil {
		t.Error("expected escape attempt to be denied")
	}
}

func TestFSWrite(t *testing.T) {
	fs, dir := newTestFS(t, MountReadWrite)

	if _, err := fs.Write([]string{"/data/out.txt", "written"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "written" {
		t.Errorf("expected 'written', got %q", data)
	}
}

func TestFSWriteReadOnlyMount(t *testing.T) {
	fs, _ := newTestFS(t, MountReadOnly)

	_, err := fs.Write([]string{"/data/out.txt", "nope"})
	if err == nil || !strings.Contains(err.Error(), "read-only") {
		t.Errorf("expected read-only denial, got %v", err)
	}
}

func TestFSExists(t *testing.T) {
	fs, dir := newTestFS(t, MountReadOnly)
	os.WriteFile(filepath.Join(dir, "here.txt"), []byte("x"), 0o644)

	got, err := fs.Exists([]string{"/data/here.txt"})
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if got != "true" {
		t.Errorf("expected true, got %q", got)
	}

	got, err = fs.Exists([]string{"/data/nothere.txt"})
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if got != "false" {
		t.Errorf("expected false, got %q", got)
	}
}

func TestFSMaxFileSize(t *testing.T) {
	fs, dir := newTestFS(t, MountReadOnly, WithMaxFileSize(4))
	os.WriteFile(filepath.Join(dir, "big.txt"), []byte("too big"), 0o644)

	if _, err := fs.Read([]string{"/data/big.txt"}); err == nil {
		t.Error("expected max size error")
	}
}

func TestFSMaxWriteSize(t *testing.T) {
	fs, _ := newTestFS(t, MountReadWrite, WithMaxWriteSize(4))

	if _, err := fs.Write([]string{"/data/out.txt", "too big"}); err == nil {
		t.Error("expected max write size error")
	}
}
