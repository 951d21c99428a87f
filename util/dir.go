package util

import (
	"fmt"
	"os"
)

// Listing is the result of enumerating a flat directory.
type Listing struct {
	// Files holds the names of regular files, sorted by name.
	Files []string
	// Skipped holds the names of entries that are not regular files:
	// subdirectories, symlinks, devices, sockets and pipes.
	Skipped []string
}

// ListRegularFiles enumerates the direct children of dir. Subdirectories are
// not descended into and symlinks are not followed. The order is by file
// name, so two listings of an unchanged directory are identical.
func ListRegularFiles(dir string) (Listing, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return Listing{}, err
	}
	if !info.IsDir() {
		return Listing{}, fmt.Errorf("%s: %w", dir, ErrExpectedDirectory)
	}
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return Listing{}, err
	}
	var l Listing
	for _, d := range dirents {
		if d.Type().IsRegular() {
			l.Files = append(l.Files, d.Name())
		} else {
			l.Skipped = append(l.Skipped, d.Name())
		}
	}
	return l, nil
}

// EnsureDir creates path and any missing parents. It succeeds if path
// already exists as a directory.
func EnsureDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s: %w", path, ErrExpectedDirectory)
		}
		return nil
	}
	return os.MkdirAll(path, 0o755)
}

// CheckRegularFile returns nil if path is a regular file, ErrExpectedFile
// for a directory and ErrUnexpectedSymlink for a symlink.
func CheckRegularFile(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return fmt.Errorf("%s: %w", path, ErrUnexpectedSymlink)
	case info.IsDir():
		return fmt.Errorf("%s: %w", path, ErrExpectedFile)
	case !info.Mode().IsRegular():
		return fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}
	return nil
}
