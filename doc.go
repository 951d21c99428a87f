// Package main provides the huffarc command-line interface.
//
// huffarc compresses single files, and flat directories packed into one
// archive, with a Huffman code rebuilt deterministically from the byte
// frequencies stored in each file's header.
//
// The main binary supports multiple subcommands:
//   - compress, decompress: Code a single file
//   - pack, unpack: Code a directory as one archive, serially, on a goroutine
//     pool, or with one worker process per file
//   - list, verify: Inspect and check archives
//   - seed: Generate test files
package main
