// Package archive implements the flat container that packs the compressed
// form of several files into one stream.
//
// Wire format, all integers little-endian:
//
//	count     int32
//	repeat count times:
//	  nameLen int32
//	  name    nameLen bytes
//	  size    int64
//	  payload size bytes, a complete huffman stream (header included)
//
// Entries appear in the order they were written, which is the order the
// source directory was enumerated. The container is written once and read
// sequentially; it is never updated in place.
package archive
