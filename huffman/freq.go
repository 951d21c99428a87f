package huffman

import (
	"bufio"
	"io"
)

// NumSymbols is the size of the byte alphabet.
const NumSymbols = 256

// FrequencyTable counts occurrences of every byte value in a stream.
//
// A FrequencyTable is a plain value; every compress or decompress call owns
// its own so that concurrent calls never share counters.
type FrequencyTable [NumSymbols]uint64

var _ io.Writer = (*FrequencyTable)(nil)

// Write adds the bytes of p to the histogram. It never fails.
func (ft *FrequencyTable) Write(p []byte) (int, error) {
	for _, b := range p {
		ft[b]++
	}
	return len(p), nil
}

// Total returns the number of symbols counted.
func (ft *FrequencyTable) Total() uint64 {
	var total uint64
	for _, c := range ft {
		total += c
	}
	return total
}

// Distinct returns the number of byte values with a nonzero count.
func (ft *FrequencyTable) Distinct() int {
	n := 0
	for _, c := range ft {
		if c != 0 {
			n++
		}
	}
	return n
}

// CountFrequencies builds a FrequencyTable from everything r yields.
func CountFrequencies(r io.Reader) (FrequencyTable, error) {
	var ft FrequencyTable
	if _, err := io.Copy(&ft, bufio.NewReader(r)); err != nil {
		return FrequencyTable{}, err
	}
	return ft, nil
}
