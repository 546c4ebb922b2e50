package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindCldtTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	manifest := filepath.Join(root, "cldt.toml")
	if err := os.WriteFile(manifest, []byte("[format]\nindent_width = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := findCldtToml(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("manifest not found from nested directory")
	}
	if path != manifest {
		t.Errorf("path = %s, want %s", path, manifest)
	}
}

func TestFindCldtTomlMissing(t *testing.T) {
	_, ok, err := findCldtToml(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("unexpected manifest in empty directory")
	}
}

func TestLoadFormatOptions(t *testing.T) {
	root := t.TempDir()
	manifest := "[format]\nindent_width = 2\nuse_tabs = true\ncomment_column = 30\n"
	if err := os.WriteFile(filepath.Join(root, "cldt.toml"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := loadFormatOptions(root)
	if err != nil {
		t.Fatal(err)
	}
	if opts.IndentWidth != 2 || !opts.UseTabs || opts.CommentColumn != 30 {
		t.Errorf("opts = %+v", opts)
	}
}

func TestLoadFormatOptionsDefaults(t *testing.T) {
	opts, err := loadFormatOptions(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	// Zero values defer to format.Options defaults downstream.
	if opts.IndentWidth != 0 || opts.UseTabs || opts.CommentColumn != 0 {
		t.Errorf("opts = %+v", opts)
	}
}
