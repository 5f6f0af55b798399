// Package fs lists directories for the file browser.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ParentName is the name of the synthetic entry that leads to the parent directory
const ParentName = ".."

// Entry is a single directory entry
type Entry struct {
	Name  string
	Path  string
	IsDir bool
	Size  int64
}

// IsParent reports whether the entry is the ".." link
func (e Entry) IsParent() bool {
	return e.Name == ParentName
}

// List returns the entries of dir, directories first, then files, each group
// sorted by name. A ".." entry pointing at the parent is prepended unless dir
// is the filesystem root. Hidden entries are skipped unless showHidden is set.
func List(dir string, showHidden bool) ([]Entry, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(abs)
	if err != nil {
		return nil, err
	}

	var dirs, files []Entry
	for _, de := range dirEntries {
		name := de.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}

		path := filepath.Join(abs, name)
		entry := Entry{Name: name, Path: path}

		// Follow symlinks so linked directories are navigable
		info, err := os.Stat(path)
		if err != nil {
			// Dangling link or vanished entry: list it as a plain file
			if info, err = de.Info(); err != nil {
				continue
			}
		}
		entry.IsDir = info.IsDir()
		if !entry.IsDir {
			entry.Size = info.Size()
		}

		if entry.IsDir {
			dirs = append(dirs, entry)
		} else {
			files = append(files, entry)
		}
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	out := make([]Entry, 0, len(dirs)+len(files)+1)
	if parent := Parent(abs); parent != abs {
		out = append(out, Entry{Name: ParentName, Path: parent, IsDir: true})
	}
	out = append(out, dirs...)
	out = append(out, files...)
	return out, nil
}

// Parent returns the parent of dir; the root is its own parent
func Parent(dir string) string {
	return filepath.Dir(filepath.Clean(dir))
}

// HumanSize formats a byte count for display
func HumanSize(n int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(n)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d %s", n, units[0])
	}
	return fmt.Sprintf("%.1f %s", size, units[i])
}
