package cmd

import (
	"path/filepath"
	"strings"
)

// Ext is appended to compressed files and archives.
const Ext = ".huff"

// compressedPath names the output of compressing path.
func compressedPath(path string) string {
	return strings.TrimRight(path, `/\`) + Ext
}

// restoredPath names the output of decompressing path: the name without its
// extension, or the name with a suffix if it has none.
func restoredPath(path string) string {
	path = strings.TrimRight(path, `/\`)
	if stem, ok := strings.CutSuffix(filepath.Base(path), Ext); ok && stem != "" {
		return filepath.Join(filepath.Dir(path), stem)
	}
	return path + "_restored"
}

// sameDir reports whether two paths name the same directory.
func sameDir(path1, path2 string) bool {
	abs1, err1 := filepath.Abs(path1)
	abs2, err2 := filepath.Abs(path2)
	if err1 != nil || err2 != nil {
		return filepath.Clean(path1) == filepath.Clean(path2)
	}
	return abs1 == abs2
}
