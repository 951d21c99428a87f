package archive

import (
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/dendrascience/huffarc/huffman"
)

// Info is an entry together with what its huffman header declares.
type Info struct {
	Entry
	Symbols  int64  `json:"symbols"`
	Distinct int    `json:"distinct"`
	Err      string `json:"error,omitempty"`
}

// List reads every entry header of the archive in r. A corrupt entry header
// is recorded in that entry's Err; a corrupt container is returned as an
// error together with the entries read so far.
func List(r io.Reader) ([]Info, error) {
	ar, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	infos := []Info{}
	for {
		e, payload, err := ar.Next()
		if errors.Is(err, io.EOF) {
			return infos, nil
		}
		if err != nil {
			return infos, err
		}
		info := Info{Entry: e}
		h, err := huffman.ReadHeader(payload)
		if err != nil {
			info.Err = err.Error()
		} else {
			info.Symbols = h.Total
			info.Distinct = h.Freq.Distinct()
		}
		infos = append(infos, info)
	}
}

// Report is the result of verifying one entry.
type Report struct {
	Entry
	Symbols int64  `json:"symbols"`
	Digest  string `json:"digest,omitempty"` // xxhash64 of the decoded content
	Err     string `json:"error,omitempty"`
}

// OK reports whether the entry decoded cleanly.
func (r Report) OK() bool {
	return r.Err == ""
}

// Digest formats the xxhash64 of content the way Report and util.GetHash do.
func Digest(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}

// Verify fully decodes every entry of the archive in r without writing the
// content anywhere. Each entry's header must pass validation and its payload
// must yield exactly the declared number of symbols.
func Verify(r io.Reader) ([]Report, error) {
	ar, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	reports := []Report{}
	for {
		e, payload, err := ar.Next()
		if errors.Is(err, io.EOF) {
			return reports, nil
		}
		if err != nil {
			return reports, err
		}
		rep := Report{Entry: e}
		if err := ValidateName(e.Name); err != nil {
			rep.Err = err.Error()
			reports = append(reports, rep)
			continue
		}
		d := xxhash.New()
		h, err := huffman.Decompress(d, payload)
		if err != nil {
			if errors.Is(err, ErrCorruptArchive) {
				return reports, err
			}
			rep.Err = err.Error()
		} else {
			rep.Symbols = h.Total
			rep.Digest = Digest(d.Sum64())
		}
		reports = append(reports, rep)
	}
}
