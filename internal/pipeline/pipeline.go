// Package pipeline composes bitvector, freqlist, and hufftree into the
// two-pass encode and single-pass decode operations, in both packed-bit
// and ASCII codeword modes.
package pipeline

import (
	"bufio"
	"io"
	"os"

	"github.com/nwillc/huffgo/internal/bitvector"
	"github.com/nwillc/huffgo/internal/herrors"
	"github.com/nwillc/huffgo/internal/hufftree"
)

// readAllBytes reads an entire file into memory in a single sequential
// pass, using bufio for efficiency.
func readAllBytes(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, herrors.Wrap(herrors.IoOpen, err, "opening %s", path)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	data, err := io.ReadAll(br)
	if err != nil {
		return nil, herrors.Wrap(herrors.IoShort, err, "reading %s", path)
	}
	return data, nil
}

// buildCodeVectors converts every non-empty codebook entry into a packed
// bit vector, for use by the packed-mode emit pass.
func buildCodeVectors(table *hufftree.Codebook) ([256]*bitvector.Vector, error) {
	var vectors [256]*bitvector.Vector
	for b := 0; b < 256; b++ {
		code, ok := table.Lookup(byte(b))
		if !ok {
			continue
		}
		v, err := bitvector.FromBitString(code)
		if err != nil {
			return vectors, err
		}
		vectors[b] = v
	}
	return vectors, nil
}
