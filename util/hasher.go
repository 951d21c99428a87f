package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// GetFileHash returns the xxhash64 of a regular file's content as 16 hex
// digits.
func GetFileHash(path string) (string, error) {
	if err := CheckRegularFile(path); err != nil {
		return "", err
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return GetHash(file)
}

// GetHash returns the xxhash64 of everything r yields as 16 hex digits.
func GetHash(r io.Reader) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// HashDirectory hashes every regular file directly inside dir, keyed by name.
func HashDirectory(dir string) (map[string]string, error) {
	l, err := ListRegularFiles(dir)
	if err != nil {
		return nil, err
	}
	sums := make(map[string]string, len(l.Files))
	for _, name := range l.Files {
		sum, err := GetFileHash(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		sums[name] = sum
	}
	return sums, nil
}
