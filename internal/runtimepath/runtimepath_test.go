package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestDir_FallbacksWhenXDGRuntimeDirMissing(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}

	wantRun := fmt.Sprintf("/run/user/%d", os.Getuid())
	wantTmp := fmt.Sprintf("/tmp/wmgeom-runtime-%d", os.Getuid())
	if got != wantRun && got != wantTmp {
		t.Fatalf("Dir() = %q, want %q or %q", got, wantRun, wantTmp)
	}
}

func TestSocketPathPerDisplay(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)
	t.Setenv("DISPLAY", ":0")

	tests := []struct {
		display string
		want    string
	}{
		{"", "wmgeom-0.sock"},
		{":1", "wmgeom-1.sock"},
		{":1.0", "wmgeom-1.0.sock"},
		{"host:10.0", "wmgeom-host-10.0.sock"},
		{"/tmp/.X11-unix/X2", "wmgeom-tmp-.X11-unix-X2.sock"},
	}
	for _, tt := range tests {
		got, err := SocketPath(tt.display)
		if err != nil {
			t.Fatalf("SocketPath(%q) error: %v", tt.display, err)
		}
		if want := filepath.Join(td, tt.want); got != want {
			t.Fatalf("SocketPath(%q) = %q, want %q", tt.display, got, want)
		}
	}

	t.Setenv("DISPLAY", "")
	got, err := SocketPath("")
	if err != nil {
		t.Fatalf("SocketPath without display: %v", err)
	}
	if want := filepath.Join(td, "wmgeom.sock"); got != want {
		t.Fatalf("SocketPath without display = %q, want %q", got, want)
	}
}
