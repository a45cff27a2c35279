package source

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/uetools/propscan/entity"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func writeDump(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDirSourceScan(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, filepath.Join(dir, "a.props.txt"), "A = 1\n")
	writeDump(t, filepath.Join(dir, "sub", "b.props.txt"), "B = 2\n")
	writeDump(t, filepath.Join(dir, "sub", "notes.txt"), "not a dump\n")

	src := NewDirSource(discardLogger(), "umodel", dir, "generic", false)
	if src.Name() != "umodel" {
		t.Errorf("Name() = %q, want %q", src.Name(), "umodel")
	}
	if src.ProfileName() != "generic" {
		t.Errorf("ProfileName() = %q, want %q", src.ProfileName(), "generic")
	}

	files := make(chan entity.AssetFile, 16)
	if err := src.Provide(context.Background(), files); err != nil {
		t.Fatalf("Provide() error: %v", err)
	}
	close(files)

	got := map[string]string{}
	for f := range files {
		if f.Source != "umodel" {
			t.Errorf("file %q has source %q, want %q", f.Path, f.Source, "umodel")
		}
		if f.Seen.IsZero() {
			t.Errorf("file %q has a zero Seen time", f.Path)
		}
		got[f.Path] = string(f.Data)
	}

	want := map[string]string{
		"a.props.txt":     "A = 1\n",
		"sub/b.props.txt": "B = 2\n",
	}
	if len(got) != len(want) {
		t.Fatalf("served %d files (%v), want %d", len(got), got, len(want))
	}
	for p, content := range want {
		if got[p] != content {
			t.Errorf("file %q has content %q, want %q", p, got[p], content)
		}
	}
}

func TestDirSourceWatch(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, filepath.Join(dir, "a.props.txt"), "A = 1\n")

	src := NewDirSource(discardLogger(), "umodel", dir, "generic", true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	files := make(chan entity.AssetFile, 64)
	done := make(chan error, 1)
	go func() { done <- src.Provide(ctx, files) }()

	// A fresh export can arrive as a create+write burst, so the same
	// path may be served more than once and early deliveries may hold
	// partial content. Wait for the delivery with the final content.
	waitContent := func(path, content string) {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for {
			select {
			case f := <-files:
				if f.Path == path && string(f.Data) == content {
					return
				}
			case <-deadline:
				t.Fatalf("timed out waiting for %s with %q", path, content)
			}
		}
	}

	waitContent("a.props.txt", "A = 1\n")

	writeDump(t, filepath.Join(dir, "b.props.txt"), "B = 2\n")
	waitContent("b.props.txt", "B = 2\n")

	// A directory created after the walk must be picked up along with
	// the dumps inside it.
	writeDump(t, filepath.Join(dir, "sub", "c.props.txt"), "C = 3\n")
	waitContent("sub/c.props.txt", "C = 3\n")

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Provide() after cancel = %v, want context.Canceled", err)
	}
}

func TestDirSourceMissingRoot(t *testing.T) {
	src := NewDirSource(discardLogger(), "umodel", filepath.Join(t.TempDir(), "absent"), "generic", false)

	files := make(chan entity.AssetFile, 1)
	if err := src.Provide(context.Background(), files); err == nil {
		t.Fatal("Provide() on a missing root did not fail")
	}
}
