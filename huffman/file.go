package huffman

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Compress writes the compressed form of r to w and returns the header it
// wrote. r is read twice: once to count frequencies and, after seeking back
// to the start, once to encode.
func Compress(w io.Writer, r io.ReadSeeker) (Header, error) {
	ft, err := CountFrequencies(r)
	if err != nil {
		return Header{}, fmt.Errorf("counting frequencies: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Header{}, fmt.Errorf("rewinding source: %w", err)
	}
	h := NewHeader(ft)
	codes := BuildTree(ft).Codes()

	out := bufio.NewWriter(w)
	if _, err := h.WriteTo(out); err != nil {
		return Header{}, fmt.Errorf("writing header: %w", err)
	}
	enc, err := NewEncoder(out, &codes)
	if err != nil {
		return Header{}, err
	}
	if _, err := io.Copy(enc, bufio.NewReader(r)); err != nil {
		// a byte with no code was absent during the counting pass
		if errors.Is(err, ErrInvalidCode) {
			return Header{}, fmt.Errorf("%w: %w", ErrSourceChanged, err)
		}
		return Header{}, fmt.Errorf("encoding: %w", err)
	}
	if err := enc.Close(); err != nil {
		return Header{}, fmt.Errorf("encoding: %w", err)
	}
	if enc.Count() != uint64(h.Total) {
		return Header{}, fmt.Errorf("%w: counted %d symbols, encoded %d", ErrSourceChanged, h.Total, enc.Count())
	}
	if err := out.Flush(); err != nil {
		return Header{}, fmt.Errorf("writing payload: %w", err)
	}
	return h, nil
}

// Decompress reads a compressed stream from r and writes the original bytes
// to w. The codes are regenerated from the stored frequency table and the
// decoding tree is rebuilt from those codes.
func Decompress(w io.Writer, r io.Reader) (Header, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return Header{}, err
	}
	codes := BuildTree(h.Freq).Codes()
	dt, err := codes.DecodingTree()
	if err != nil {
		return Header{}, err
	}
	if err := Decode(w, bufio.NewReader(r), dt, uint64(h.Total)); err != nil {
		return Header{}, err
	}
	return h, nil
}

// CompressFile compresses the regular file src into dst. On failure dst is
// removed.
func CompressFile(src, dst string) error {
	return convertFile(src, dst, func(w io.Writer, r *os.File) error {
		_, err := Compress(w, r)
		return err
	})
}

// DecompressFile decompresses src, a stream written by CompressFile, into
// dst. On failure dst is removed.
func DecompressFile(src, dst string) error {
	return convertFile(src, dst, func(w io.Writer, r *os.File) error {
		_, err := Decompress(w, r)
		return err
	})
}

func convertFile(src, dst string, convert func(io.Writer, *os.File) error) (err error) {
	in, err := openRegular(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDestinationUnwritable, dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %s: %w", ErrDestinationUnwritable, dst, cerr)
		}
		if err != nil {
			os.Remove(dst)
		}
	}()

	if err := convert(out, in); err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	return nil
}

func openRegular(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %w", ErrSourceNotFound, err)
		}
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrExpectedRegularFile, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceNotFound, err)
	}
	return f, nil
}
