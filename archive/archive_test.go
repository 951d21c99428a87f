package archive

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/dendrascience/huffarc/huffman"
)

func compressed(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	if _, err := huffman.Compress(&buf, bytes.NewReader([]byte(s))); err != nil {
		t.Fatalf("huffman.Compress() error = %v", err)
	}
	return buf.Bytes()
}

func buildArchive(t *testing.T, names []string, payloads [][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := NewWriter(&buf, len(names))
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	for i, name := range names {
		if err := w.WriteEntry(name, int64(len(payloads[i])), bytes.NewReader(payloads[i])); err != nil {
			t.Fatalf("WriteEntry(%q) error = %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return buf.Bytes()
}

func TestWriter_Layout(t *testing.T) {
	data := buildArchive(t, []string{"ab"}, [][]byte{{0xde, 0xad}})
	want := []byte{
		1, 0, 0, 0, // count
		2, 0, 0, 0, 'a', 'b', // name
		2, 0, 0, 0, 0, 0, 0, 0, // payload size
		0xde, 0xad,
	}
	if !bytes.Equal(data, want) {
		t.Errorf("archive bytes = %v, want %v", data, want)
	}
}

func TestReader_RoundTrip(t *testing.T) {
	names := []string{"first.txt", "second.bin", "empty"}
	payloads := [][]byte{compressed(t, "first file"), compressed(t, "\x00\x01\x02"), compressed(t, "")}
	data := buildArchive(t, names, payloads)

	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	if r.Len() != len(names) {
		t.Fatalf("Len() = %d, want %d", r.Len(), len(names))
	}
	for i := range names {
		e, payload, err := r.Next()
		if err != nil {
			t.Fatalf("Next() #%d error = %v", i, err)
		}
		if e.Name != names[i] || e.Size != int64(len(payloads[i])) {
			t.Errorf("entry %d = %+v, want name %q size %d", i, e, names[i], len(payloads[i]))
		}
		got, _ := io.ReadAll(payload)
		if !bytes.Equal(got, payloads[i]) {
			t.Errorf("payload %d differs", i)
		}
	}
	if _, _, err := r.Next(); err != io.EOF {
		t.Errorf("Next() after last entry error = %v, want io.EOF", err)
	}
}

func TestReader_SkipsUnreadPayload(t *testing.T) {
	data := buildArchive(t, []string{"a", "b"}, [][]byte{[]byte("0123456789"), []byte("xyz")})
	r, _ := NewReader(bytes.NewReader(data))
	_, payload, _ := r.Next()
	buf := make([]byte, 3)
	payload.Read(buf)
	e, payload, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	got, _ := io.ReadAll(payload)
	if e.Name != "b" || string(got) != "xyz" {
		t.Errorf("second entry = %q %q, want %q %q", e.Name, got, "b", "xyz")
	}
}

func TestWriter_EntryCount(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, 2)
	w.WriteEntry("one", 1, bytes.NewReader([]byte{1}))
	if err := w.Close(); !errors.Is(err, ErrEntryCount) {
		t.Errorf("Close() with missing entry error = %v, want ErrEntryCount", err)
	}

	w, _ = NewWriter(&bytes.Buffer{}, 0)
	if err := w.WriteEntry("extra", 0, bytes.NewReader(nil)); !errors.Is(err, ErrEntryCount) {
		t.Errorf("WriteEntry() beyond count error = %v, want ErrEntryCount", err)
	}
}

func TestWriter_ShortPayload(t *testing.T) {
	w, _ := NewWriter(&bytes.Buffer{}, 1)
	if err := w.WriteEntry("short", 10, bytes.NewReader([]byte("abc"))); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("WriteEntry() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "file.txt", wantErr: false},
		{name: ".hidden", wantErr: false},
		{name: "", wantErr: true},
		{name: ".", wantErr: true},
		{name: "..", wantErr: true},
		{name: "../escape", wantErr: true},
		{name: "sub/file", wantErr: true},
		{name: `win\file`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidName) {
				t.Errorf("ValidateName(%q) error = %v, want ErrInvalidName", tt.name, err)
			}
		})
	}
}

func TestReader_Corrupt(t *testing.T) {
	good := buildArchive(t, []string{"file"}, [][]byte{compressed(t, "payload data")})

	negativeCount := binary.LittleEndian.AppendUint32(nil, 0xffffffff)
	countOnly := binary.LittleEndian.AppendUint32(nil, 0x7fffffff)
	hugeName := append(binary.LittleEndian.AppendUint32(nil, 1), binary.LittleEndian.AppendUint32(nil, 1<<20)...)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "negative count", data: negativeCount},
		{name: "huge count and no entries", data: countOnly},
		{name: "name too long", data: hugeName},
		{name: "cut inside name", data: good[:6]},
		{name: "cut inside size", data: good[:12]},
		{name: "cut inside payload", data: good[:len(good)-5]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Verify(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrCorruptArchive) {
				t.Errorf("Verify() error = %v, want ErrCorruptArchive", err)
			}
		})
	}
}

func TestList_HugeCountNoEntries(t *testing.T) {
	data := binary.LittleEndian.AppendUint32(nil, 0x7fffffff)
	infos, err := List(bytes.NewReader(data))
	if !errors.Is(err, ErrCorruptArchive) {
		t.Errorf("List() error = %v, want ErrCorruptArchive", err)
	}
	if len(infos) != 0 {
		t.Errorf("List() returned %d entries, want none", len(infos))
	}
}

func TestList(t *testing.T) {
	data := buildArchive(t, []string{"a.txt", "b.txt"}, [][]byte{compressed(t, "aaabbc"), []byte("junk")})
	infos, err := List(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(infos))
	}
	if infos[0].Symbols != 6 || infos[0].Distinct != 3 || infos[0].Err != "" {
		t.Errorf("first entry = %+v, want 6 symbols, 3 distinct, no error", infos[0])
	}
	if infos[1].Err == "" {
		t.Errorf("second entry has a junk header but no error: %+v", infos[1])
	}
}

func TestVerify(t *testing.T) {
	good := compressed(t, "verified content")
	truncated := compressed(t, "this payload loses its tail during the test")
	truncated = truncated[:len(truncated)-3]

	data := buildArchive(t, []string{"good", "bad"}, [][]byte{good, truncated})
	reports, err := Verify(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("Verify() returned %d reports, want 2", len(reports))
	}
	if !reports[0].OK() {
		t.Errorf("good entry failed: %s", reports[0].Err)
	}
	if want := Digest(xxhash.Sum64String("verified content")); reports[0].Digest != want {
		t.Errorf("digest = %s, want %s", reports[0].Digest, want)
	}
	if reports[1].OK() {
		t.Error("truncated entry verified as OK")
	}
}
