package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/nwillc/huffgo/internal/bitvector"
	"github.com/nwillc/huffgo/internal/config"
	"github.com/nwillc/huffgo/internal/freqlist"
	"github.com/nwillc/huffgo/internal/herrors"
	"github.com/nwillc/huffgo/internal/hufftree"
)

// Encode runs the two-pass encode pipeline: a frequency
// pass over the input, a fold into a Huffman tree, a depth-first parse
// into a codebook, and a second pass that emits the concatenated codeword
// for every input byte into either a packed bit vector or an ASCII
// '0'/'1' byte buffer. stdout receives the ASCII codeword string when
// cfg.Print is set, regardless of which mode is selected for the file.
func Encode(cfg config.Config, stdout io.Writer) error {
	data, err := readAllBytes(cfg.InputPath)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return herrors.New(herrors.InvalidState, "cannot encode an empty input file")
	}

	list := freqlist.New()
	for _, b := range data {
		list.AddOrIncrement(b, 0)
	}

	tree, err := hufftree.Build(list)
	if err != nil {
		return err
	}
	table, err := tree.Parse()
	if err != nil {
		return err
	}

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		return herrors.Wrap(herrors.IoOpen, err, "creating %s", cfg.OutputPath)
	}
	defer out.Close()

	offset, err := tree.Serialize(out, 0)
	if err != nil {
		return err
	}

	if cfg.ASCII || cfg.Print {
		asciiBuf := make([]byte, 0, len(data))
		for _, b := range data {
			code, ok := table.Lookup(b)
			if !ok {
				return herrors.New(herrors.InvalidState, "no codeword for byte %d", b)
			}
			asciiBuf = append(asciiBuf, code...)
		}
		if cfg.Print {
			fmt.Fprintln(stdout, string(asciiBuf))
		}
		if cfg.ASCII {
			if _, err := out.WriteAt(asciiBuf, int64(offset)); err != nil {
				return herrors.Wrap(herrors.IoShort, err, "writing ascii payload")
			}
			return nil
		}
	}

	// Packed mode: accumulate codewords as true bits and serialize as a
	// length-prefixed bit vector stream.
	vectors, err := buildCodeVectors(table)
	if err != nil {
		return err
	}

	acc, err := bitvector.New(8)
	if err != nil {
		return err
	}
	for _, b := range data {
		v := vectors[b]
		if v == nil {
			return herrors.New(herrors.InvalidState, "no codeword for byte %d", b)
		}
		if err := acc.AppendVector(v, bitvector.Full); err != nil {
			return err
		}
	}

	if _, err := acc.Serialize(out, offset, bitvector.Stream); err != nil {
		return err
	}
	return nil
}
