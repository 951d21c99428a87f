package huffman

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// packedCode is a Code in the form the bit writer consumes. Codes of up to
// 64 bits are kept as an integer; longer ones fall back to the string form.
type packedCode struct {
	code  Code
	bits  uint64
	width uint8
	long  bool
}

func packCode(c Code) (packedCode, error) {
	pc := packedCode{code: c}
	if len(c) > 64 {
		pc.long = true
	}
	for i := 0; i < len(c); i++ {
		var bit uint64
		switch c[i] {
		case '0':
		case '1':
			bit = 1
		default:
			return packedCode{}, fmt.Errorf("%w: bit %q", ErrInvalidCode, c[i])
		}
		if !pc.long {
			pc.bits = pc.bits<<1 | bit
		}
	}
	if !pc.long {
		pc.width = uint8(len(c))
	}
	return pc, nil
}

// Encoder writes the codes of the bytes written to it as one packed bit
// stream, most significant bit first. Close pads the final byte with zero
// bits and flushes.
type Encoder struct {
	bw    *bitio.Writer
	codes [NumSymbols]packedCode
	has   [NumSymbols]bool
	count uint64
}

var _ io.WriteCloser = (*Encoder)(nil)

// NewEncoder returns an Encoder that writes to w using codes. It fails with
// ErrInvalidCode if a code contains anything other than '0' and '1'.
func NewEncoder(w io.Writer, codes *CodeTable) (*Encoder, error) {
	e := &Encoder{bw: bitio.NewWriter(w)}
	for _, sym := range codes.Symbols() {
		c, _ := codes.Lookup(sym)
		pc, err := packCode(c)
		if err != nil {
			return nil, fmt.Errorf("symbol %d: %w", sym, err)
		}
		e.codes[sym] = pc
		e.has[sym] = true
	}
	return e, nil
}

// Write encodes every byte of p. A byte without a code is an ErrInvalidCode.
func (e *Encoder) Write(p []byte) (int, error) {
	for i, b := range p {
		if !e.has[b] {
			return i, fmt.Errorf("%w: no code for symbol %d", ErrInvalidCode, b)
		}
		if err := e.writeCode(&e.codes[b]); err != nil {
			return i, err
		}
		e.count++
	}
	return len(p), nil
}

func (e *Encoder) writeCode(pc *packedCode) error {
	if !pc.long {
		if pc.width == 0 {
			return nil
		}
		return e.bw.WriteBits(pc.bits, pc.width)
	}
	for i := 0; i < len(pc.code); i++ {
		if err := e.bw.WriteBool(pc.code[i] == '1'); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of symbols encoded so far.
func (e *Encoder) Count() uint64 {
	return e.count
}

// Close writes out the partial final byte, if any, zero padded.
// It does not close the underlying writer.
func (e *Encoder) Close() error {
	return e.bw.Close()
}

// Decode reads packed codes from r and writes exactly total symbols to w,
// walking t from the root one bit at a time. Padding after the last symbol
// is never read.
//
// A tree whose root is a leaf decodes to total copies of that symbol without
// consuming any input. Running out of input early is ErrTruncatedPayload.
//
// Output size is bounded only by total, which for a single-symbol stream is
// not backed by any payload: a 2056-byte header can declare up to 2^63-1
// symbols. Callers decoding untrusted input should bound w themselves.
func Decode(w io.Writer, r io.Reader, t *Tree, total uint64) error {
	if total == 0 {
		return nil
	}
	if t.Len() == 0 {
		return fmt.Errorf("%w: no tree for %d symbols", ErrInvalidCode, total)
	}
	out := bufio.NewWriter(w)
	root := &t.nodes[t.root]
	if root.isLeaf() {
		for n := uint64(0); n < total; n++ {
			if err := out.WriteByte(root.symbol); err != nil {
				return err
			}
		}
		return out.Flush()
	}

	br := bitio.NewReader(r)
	cur := t.root
	for decoded := uint64(0); decoded < total; {
		bit, err := br.ReadBool()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return fmt.Errorf("%w: decoded %d of %d symbols", ErrTruncatedPayload, decoded, total)
			}
			return err
		}
		next := t.nodes[cur].left
		if bit {
			next = t.nodes[cur].right
		}
		if next == noChild {
			return fmt.Errorf("%w: bit path leaves the tree after %d symbols", ErrInvalidCode, decoded)
		}
		cur = next
		if n := &t.nodes[cur]; n.isLeaf() {
			if err := out.WriteByte(n.symbol); err != nil {
				return err
			}
			decoded++
			cur = t.root
		}
	}
	return out.Flush()
}
