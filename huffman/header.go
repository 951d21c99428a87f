package huffman

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
)

// HeaderSize is the size in bytes of the fixed header that precedes every
// compressed payload.
const HeaderSize = 8 + NumSymbols*8

// Header is the fixed-size prefix of a compressed stream: the number of
// symbols in the payload and the frequency table that regenerates the codes.
type Header struct {
	Total int64
	Freq  FrequencyTable
}

// NewHeader returns the header describing ft.
func NewHeader(ft FrequencyTable) Header {
	return Header{Total: int64(ft.Total()), Freq: ft}
}

// AppendBinary appends the encoded header to b.
func (h *Header) AppendBinary(b []byte) ([]byte, error) {
	b = binary.LittleEndian.AppendUint64(b, uint64(h.Total))
	for _, c := range h.Freq {
		b = binary.LittleEndian.AppendUint64(b, c)
	}
	return b, nil
}

// MarshalBinary returns the HeaderSize-byte encoding of h.
func (h *Header) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, HeaderSize))
}

// UnmarshalBinary decodes a header and validates it.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d of %d header bytes", ErrCorruptHeader, len(data), HeaderSize)
	}
	h.Total = int64(binary.LittleEndian.Uint64(data))
	for i := range h.Freq {
		h.Freq[i] = binary.LittleEndian.Uint64(data[8+i*8:])
	}
	return h.Validate()
}

// WriteTo writes the encoded header to w.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	buf, _ := h.MarshalBinary()
	n, err := w.Write(buf)
	return int64(n), err
}

// Validate checks that the total is not negative and equals the sum of the
// frequency table.
func (h *Header) Validate() error {
	if h.Total < 0 {
		return fmt.Errorf("%w: negative symbol count %d", ErrCorruptHeader, h.Total)
	}
	var sum, carry uint64
	for _, c := range h.Freq {
		sum, carry = bits.Add64(sum, c, 0)
		if carry != 0 {
			return fmt.Errorf("%w: frequency table overflows", ErrCorruptHeader)
		}
	}
	if sum != uint64(h.Total) {
		return fmt.Errorf("%w: frequencies sum to %d, header says %d", ErrCorruptHeader, sum, h.Total)
	}
	return nil
}

// ReadHeader reads and validates a header from r. A short read is
// ErrCorruptHeader.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, HeaderSize)
	if n, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Header{}, fmt.Errorf("%w: %d of %d header bytes", ErrCorruptHeader, n, HeaderSize)
		}
		return Header{}, err
	}
	var h Header
	if err := h.UnmarshalBinary(buf); err != nil {
		return Header{}, err
	}
	return h, nil
}
