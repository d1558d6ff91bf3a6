package main

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestIsDigits(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"000001", true},
		{"123456", true},
		{"", false},
		{"00000a", false},
		{"０００００１", false}, // full-width digits are not book ids
	}

	for _, tt := range tests {
		if got := isDigits(tt.in); got != tt.want {
			t.Errorf("isDigits(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDiscoverBooks(t *testing.T) {
	root := t.TempDir()
	markdownDir := filepath.Join(root, "markdown")
	imagesDir := filepath.Join(root, "images")
	for _, dir := range []string{
		markdownDir,
		filepath.Join(imagesDir, "000001"),
		filepath.Join(imagesDir, "000003"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	for _, name := range []string{
		"000001.md", // has images, kept
		"000002.md", // no image directory, skipped
		"000003.md", // has images, kept
		"notes.md",  // not a book id, skipped
		"1.md",      // wrong length, skipped
	} {
		if err := os.WriteFile(filepath.Join(markdownDir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	books, err := discoverBooks(root, zap.NewNop())
	if err != nil {
		t.Fatalf("discoverBooks: %v", err)
	}

	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d: %+v", len(books), books)
	}
	if books[0].id != "000001" || books[1].id != "000003" {
		t.Errorf("books = %+v, want ids 000001 and 000003 in order", books)
	}
	if books[0].mdPath != filepath.Join(markdownDir, "000001.md") {
		t.Errorf("mdPath = %q", books[0].mdPath)
	}
}

func TestDiscoverBooks_MissingDirectories(t *testing.T) {
	if _, err := discoverBooks(t.TempDir(), zap.NewNop()); err == nil {
		t.Fatal("expected error when markdown directory is missing")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "input_dir: ./corpus\nsearch_range: 8\nsample_rate: 2.5\nforce: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.InputDir != "./corpus" || cfg.SearchRange != 8 || cfg.SampleRate != 2.5 || !cfg.Force {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.InputDir != "input" || cfg.SearchRange != 5 || cfg.SampleRate != 1.0 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("input_dir: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}
