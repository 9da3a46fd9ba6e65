package main

import (
	"flag"
	"io"
	"testing"

	"github.com/1broseidon/wmgeom/internal/config"
	"github.com/1broseidon/wmgeom/internal/tiling"
)

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceDefault}, "default"},
		{config.Source{Kind: config.SourceFile}, "file"},
		{config.Source{Kind: config.SourceFile, File: "/tmp/a.yaml"}, "file:/tmp/a.yaml"},
		{config.Source{Kind: config.SourceFile, File: "/tmp/a.yaml", Line: 3, Column: 5}, "file:/tmp/a.yaml:3:5"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Fatalf("formatSource(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestWorkspaceOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Workspaces.Rows = 2
	cfg.Workspaces.StartingCorner = "bottom-right"
	cfg.Workspaces.Vertical = true
	cfg.Workspaces.Wrap = true

	opts := workspaceOptions(cfg)
	if opts.Rows != 2 || opts.Cols != 0 || !opts.Vertical || !opts.Wrap {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.StartingCorner != tiling.CornerBottomRight {
		t.Fatalf("starting corner = %v, want bottom-right", opts.StartingCorner)
	}
}

func TestParseFlags(t *testing.T) {
	newFS := func() *flag.FlagSet {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		fs.Int("count", 0, "")
		return fs
	}

	if code, ok := parseFlags(newFS(), []string{"--count", "3"}); !ok || code != 0 {
		t.Fatalf("valid flags = (%d, %t)", code, ok)
	}
	if code, ok := parseFlags(newFS(), []string{"-h"}); ok || code != 0 {
		t.Fatalf("help = (%d, %t), want (0, false)", code, ok)
	}
	if code, ok := parseFlags(newFS(), []string{"--bogus"}); ok || code != 2 {
		t.Fatalf("unknown flag = (%d, %t), want (2, false)", code, ok)
	}
}

func TestSnapModeNames(t *testing.T) {
	if got := snapModeNames(); got[:len("maximize, left-half")] != "maximize, left-half" {
		t.Fatalf("unexpected mode list %q", got)
	}
}
