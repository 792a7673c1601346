package walker

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("content\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDiscover_Recursive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md")
	writeFile(t, root, "sub/b.md")
	writeFile(t, root, "sub/deep/c.md")
	writeFile(t, root, "sub/ignored.txt")

	paths, err := Discover(root, true, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 markdown files, got %d: %v", len(paths), paths)
	}
}

func TestDiscover_NonRecursive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md")
	writeFile(t, root, "sub/b.md")

	paths, err := Discover(root, false, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "a.md" {
		t.Fatalf("expected only top-level file, got %v", paths)
	}
}

func TestDiscover_SkipsConfiguredAndDotDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.md")
	writeFile(t, root, ".obsidian/workspace.md")
	writeFile(t, root, ".git/objects/x.md")
	writeFile(t, root, "node_modules/pkg/readme.md")
	writeFile(t, root, "_TAG_NOTES/registry.md")
	writeFile(t, root, ".hidden.md")

	paths, err := Discover(root, true, []string{"node_modules", "_TAG_NOTES"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "keep.md" {
		t.Fatalf("expected only keep.md, got %v", paths)
	}
}

func TestDiscover_SortedOrder(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"zeta.md", "alpha.md", "mid/beta.md"} {
		writeFile(t, root, name)
	}

	paths, err := Discover(root, true, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if !sort.StringsAreSorted(paths) {
		t.Errorf("expected sorted paths, got %v", paths)
	}
}

func TestDiscover_MissingFolderIsHardError(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope"), true, nil); err == nil {
		t.Fatal("expected error for missing folder")
	}
}

func TestDiscover_EmptyFolderIsNotAnError(t *testing.T) {
	paths, err := Discover(t.TempDir(), true, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected no files, got %v", paths)
	}
}

func TestDiscover_UppercaseExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "NOTE.MD")

	paths, err := Discover(root, true, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("expected case-insensitive extension match, got %v", paths)
	}
}

func TestDiscoverDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md")
	writeFile(t, root, "sub/b.md")
	writeFile(t, root, "sub/deep/c.md")
	writeFile(t, root, ".obsidian/workspace.md")
	writeFile(t, root, "node_modules/pkg/readme.md")

	dirs, err := DiscoverDirs(root, true, []string{"node_modules"})
	if err != nil {
		t.Fatalf("DiscoverDirs: %v", err)
	}

	want := []string{
		root,
		filepath.Join(root, "sub"),
		filepath.Join(root, "sub", "deep"),
	}
	if len(dirs) != len(want) {
		t.Fatalf("dirs = %v, want %v", dirs, want)
	}
	for i := range want {
		if dirs[i] != want[i] {
			t.Errorf("dirs[%d] = %q, want %q", i, dirs[i], want[i])
		}
	}
}

func TestDiscoverDirs_NonRecursive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "sub/b.md")

	dirs, err := DiscoverDirs(root, false, nil)
	if err != nil {
		t.Fatalf("DiscoverDirs: %v", err)
	}
	if len(dirs) != 1 || dirs[0] != root {
		t.Errorf("dirs = %v, want just the root", dirs)
	}
}
