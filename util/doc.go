// Package util provides the filesystem collaborators used by huffarc.
//
// Directory enumeration:
//   - ListRegularFiles lists the regular files directly inside a directory in
//     name order and reports everything else (subdirectories, symlinks,
//     devices) as skipped. There is no recursion.
//
// Destinations:
//   - EnsureDir creates an output directory if it is absent and is a no-op if
//     it exists.
//
// Content digests:
//   - GetHash, GetFileHash and HashDirectory compute xxhash64 digests used to
//     compare restored files with their sources.
//
// Reports:
//   - WriteJSON and WriteJSONFile emit the machine readable output of the
//     list and verify commands.
package util
