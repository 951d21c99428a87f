package archive

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// MaxNameLen bounds the length of an entry name accepted by the reader.
const MaxNameLen = 4096

// Entry describes one member of an archive.
type Entry struct {
	Name string `json:"name"`
	Size int64  `json:"size"` // size of the compressed payload in bytes
}

// ValidateName reports whether name can be stored. Names are plain file
// names: no path separators, not "." or "..", and not empty.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`), strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case len(name) > MaxNameLen:
		return fmt.Errorf("%w: name is %d bytes", ErrInvalidName, len(name))
	}
	return nil
}

// Writer writes an archive with a fixed number of entries.
type Writer struct {
	w        *bufio.Writer
	declared int
	written  int
	err      error
}

// NewWriter writes the entry count to w and returns a Writer for exactly
// count entries.
func NewWriter(w io.Writer, count int) (*Writer, error) {
	if count < 0 || count > math.MaxInt32 {
		return nil, fmt.Errorf("%w: cannot declare %d entries", ErrEntryCount, count)
	}
	aw := &Writer{w: bufio.NewWriter(w), declared: count}
	aw.putInt32(int32(count))
	return aw, aw.err
}

func (aw *Writer) putInt32(v int32) {
	if aw.err != nil {
		return
	}
	_, aw.err = aw.w.Write(binary.LittleEndian.AppendUint32(nil, uint32(v)))
}

func (aw *Writer) putInt64(v int64) {
	if aw.err != nil {
		return
	}
	_, aw.err = aw.w.Write(binary.LittleEndian.AppendUint64(nil, uint64(v)))
}

// WriteEntry appends an entry whose payload is the next size bytes of r.
func (aw *Writer) WriteEntry(name string, size int64, r io.Reader) error {
	if aw.err != nil {
		return aw.err
	}
	if err := ValidateName(name); err != nil {
		return err
	}
	if size < 0 {
		return fmt.Errorf("%w: negative payload size %d for %s", ErrCorruptArchive, size, name)
	}
	if aw.written == aw.declared {
		return fmt.Errorf("%w: more than %d entries", ErrEntryCount, aw.declared)
	}
	aw.putInt32(int32(len(name)))
	if aw.err == nil {
		_, aw.err = aw.w.WriteString(name)
	}
	aw.putInt64(size)
	if aw.err != nil {
		return aw.err
	}
	n, err := io.CopyN(aw.w, r, size)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("payload of %s: %d of %d bytes: %w", name, n, size, io.ErrUnexpectedEOF)
		}
		aw.err = err
		return err
	}
	aw.written++
	return nil
}

// Close flushes buffered data. It fails with ErrEntryCount if fewer entries
// were written than declared. It does not close the underlying writer.
func (aw *Writer) Close() error {
	if aw.err != nil {
		return aw.err
	}
	if aw.written != aw.declared {
		return fmt.Errorf("%w: wrote %d of %d", ErrEntryCount, aw.written, aw.declared)
	}
	return aw.w.Flush()
}

// Reader reads the entries of an archive in order.
type Reader struct {
	r       *bufio.Reader
	count   int
	next    int
	payload *io.LimitedReader
}

// NewReader reads the entry count from r.
func NewReader(r io.Reader) (*Reader, error) {
	ar := &Reader{r: bufio.NewReader(r)}
	count, err := ar.getInt32()
	if err != nil {
		return nil, fmt.Errorf("reading entry count: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative entry count %d", ErrCorruptArchive, count)
	}
	ar.count = int(count)
	return ar, nil
}

// Len returns the declared number of entries. It comes straight from the
// archive and is not checked against what follows, so it must not be used to
// size allocations.
func (ar *Reader) Len() int {
	return ar.count
}

func (ar *Reader) getInt32() (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(ar.r, buf[:]); err != nil {
		return 0, corrupt(err)
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

func (ar *Reader) getInt64() (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(ar.r, buf[:]); err != nil {
		return 0, corrupt(err)
	}
	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}

func corrupt(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrCorruptArchive, io.ErrUnexpectedEOF)
	}
	return err
}

// Next advances to the next entry and returns it with a reader for its
// payload. Any unread payload of the previous entry is skipped. After the
// last entry Next returns io.EOF.
//
// The payload reader is valid until the following call to Next; reading
// fewer than Size bytes from it before the archive ends is ErrCorruptArchive.
func (ar *Reader) Next() (Entry, io.Reader, error) {
	if ar.payload != nil {
		if _, err := io.Copy(io.Discard, ar.payload); err != nil {
			return Entry{}, nil, corrupt(err)
		}
		if ar.payload.N > 0 {
			return Entry{}, nil, fmt.Errorf("%w: payload short by %d bytes", ErrCorruptArchive, ar.payload.N)
		}
		ar.payload = nil
	}
	if ar.next >= ar.count {
		return Entry{}, nil, io.EOF
	}
	nameLen, err := ar.getInt32()
	if err != nil {
		return Entry{}, nil, err
	}
	if nameLen < 0 || nameLen > MaxNameLen {
		return Entry{}, nil, fmt.Errorf("%w: name length %d", ErrCorruptArchive, nameLen)
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(ar.r, name); err != nil {
		return Entry{}, nil, corrupt(err)
	}
	size, err := ar.getInt64()
	if err != nil {
		return Entry{}, nil, err
	}
	if size < 0 {
		return Entry{}, nil, fmt.Errorf("%w: negative payload size %d", ErrCorruptArchive, size)
	}
	ar.next++
	ar.payload = &io.LimitedReader{R: ar.r, N: size}
	return Entry{Name: string(name), Size: size}, &payloadReader{lr: ar.payload}, nil
}

// payloadReader turns an early end of the archive into ErrCorruptArchive.
type payloadReader struct {
	lr *io.LimitedReader
}

func (p *payloadReader) Read(b []byte) (int, error) {
	n, err := p.lr.Read(b)
	if err == io.EOF && p.lr.N > 0 {
		err = fmt.Errorf("%w: payload short by %d bytes", ErrCorruptArchive, p.lr.N)
	}
	return n, err
}
