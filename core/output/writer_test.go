package output

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path, err := w.WriteReport("https://example.com/docs/intro", []byte(`{"ok":true}`), ".json")
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	want := filepath.Join(dir, "example_com_docs_intro.json")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("content = %q", data)
	}
}

func TestWriteSiteReport(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		url  string
		want string
	}{
		{"https://site.com/docs/intro", filepath.Join(dir, "docs", "intro.md")},
		{"https://site.com/", filepath.Join(dir, "index.md")},
		{"https://site.com", filepath.Join(dir, "index.md")},
		{"https://site.com/about/", filepath.Join(dir, "about.md")},
	}

	for _, tt := range tests {
		path, err := w.WriteSiteReport(tt.url, []byte("# report"), ".md")
		if err != nil {
			t.Fatalf("WriteSiteReport(%q): %v", tt.url, err)
		}
		if path != tt.want {
			t.Errorf("WriteSiteReport(%q) = %q, want %q", tt.url, path, tt.want)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("file missing: %v", err)
		}
	}
}

func TestFilenameFromURL(t *testing.T) {
	tests := []struct{ in, want string }{
		{"https://example.com", "example_com"},
		{"https://example.com/a/b", "example_com_a_b"},
		{"https://sub.example.com/x-y", "sub_example_com_x_y"},
	}
	for _, tt := range tests {
		if got := filenameFromURL(tt.in); got != tt.want {
			t.Errorf("filenameFromURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
