// Package huffman implements byte-oriented Huffman coding for single files.
//
// A compressed stream is a fixed 2056-byte header followed by a bit-packed
// payload:
//
//	offset  size     field
//	0       8        total symbol count (int64, little-endian)
//	8       256*8    frequency of each byte value 0..255 (uint64, little-endian)
//	2056    rest     codes packed most-significant-bit first, final byte zero padded
//
// Only the frequency table crosses the wire. Encoder and decoder both rebuild
// the same tree from it with BuildTree, so the tie-breaking rule used there is
// part of the format: nodes of equal frequency are ordered by insertion, leaves
// first in ascending symbol order, and the first node popped becomes the left
// (0) child.
//
// The payload carries no end marker. Decoding stops after exactly the number
// of symbols recorded in the header, which is also how trailing padding bits
// are ignored.
package huffman
