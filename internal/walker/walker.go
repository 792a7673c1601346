// Package walker enumerates candidate documents under vault folders.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const markdownExt = ".md"

// Discover returns the markdown files under root, sorted lexicographically
// so downstream first-wins policies are reproducible across platforms.
//
// Recursive and non-recursive modes are distinct, explicit inputs. Any path
// containing a skip-directory component or a dot-directory component is
// excluded. A missing or non-directory root is a hard error: an empty result
// would otherwise be indistinguishable from a vault with no tags.
func Discover(root string, recursive bool, skipDirs []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("folder not found: %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a folder: %s", root)
	}

	skip := make(map[string]bool, len(skipDirs))
	for _, dir := range skipDirs {
		skip[dir] = true
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable subtree; the files it holds contribute nothing.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if !recursive || skipDir(d.Name(), skip) {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(name), markdownExt) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// DiscoverDirs returns root plus, when recursive, every non-skipped
// directory under it, sorted. Filesystem watchers need the directory set
// since watches do not extend into subtrees.
func DiscoverDirs(root string, recursive bool, skipDirs []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("folder not found: %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a folder: %s", root)
	}

	skip := make(map[string]bool, len(skipDirs))
	for _, dir := range skipDirs {
		skip[dir] = true
	}

	var dirs []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path == root {
			dirs = append(dirs, path)
			return nil
		}
		if !recursive || skipDir(d.Name(), skip) {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(dirs)
	return dirs, nil
}

func skipDir(name string, skip map[string]bool) bool {
	return strings.HasPrefix(name, ".") || skip[name]
}
