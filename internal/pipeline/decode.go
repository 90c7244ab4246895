package pipeline

import (
	"io"
	"os"

	"github.com/nwillc/huffgo/internal/bitvector"
	"github.com/nwillc/huffgo/internal/config"
	"github.com/nwillc/huffgo/internal/herrors"
	"github.com/nwillc/huffgo/internal/hufftree"
)

// Decode runs the single-pass decode pipeline: deserialize
// the tree, compute the payload offset from the stored node count, read
// the packed or ASCII payload, and walk the tree one opcode at a time,
// emitting a byte whenever the walk lands on a leaf.
func Decode(cfg config.Config) error {
	in, err := os.Open(cfg.InputPath)
	if err != nil {
		return herrors.Wrap(herrors.IoOpen, err, "opening %s", cfg.InputPath)
	}
	defer in.Close()

	tree, err := hufftree.Deserialize(in)
	if err != nil {
		return err
	}
	offset := hufftree.HeaderSize(tree.Count)

	var opcodes []int
	if cfg.ASCII {
		opcodes, err = readASCIIOpcodes(in, offset)
	} else {
		opcodes, err = readPackedOpcodes(in, offset)
	}
	if err != nil {
		return err
	}

	output := make([]byte, 0, len(opcodes)/8+1)
	cursor := tree.Root
	for _, opcode := range opcodes {
		next, emitted, ok, err := tree.StateStep(cursor, opcode)
		if err != nil {
			return err
		}
		cursor = next
		if ok {
			output = append(output, emitted)
		}
	}

	if err := os.WriteFile(cfg.OutputPath, output, 0o644); err != nil {
		return herrors.Wrap(herrors.IoShort, err, "writing %s", cfg.OutputPath)
	}
	return nil
}

// readPackedOpcodes reads a length-prefixed bit vector from r at offset and
// returns its stream-mode bits as opcodes.
func readPackedOpcodes(r io.ReaderAt, offset uint64) ([]int, error) {
	vec, _, err := bitvector.Deserialize(r, offset)
	if err != nil {
		return nil, err
	}
	n := vec.Size(bitvector.Stream)
	opcodes := make([]int, n)
	for i := uint64(0); i < n; i++ {
		bit, err := vec.Check(i)
		if err != nil {
			return nil, err
		}
		opcodes[i] = bit
	}
	return opcodes, nil
}

// readASCIIOpcodes reads raw bytes from f at offset to EOF, requiring each
// to be the character '0' or '1', and returns the corresponding opcodes.
func readASCIIOpcodes(f *os.File, offset uint64) ([]int, error) {
	if _, err := f.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, herrors.Wrap(herrors.IoShort, err, "seeking to ascii payload")
	}
	payload, err := io.ReadAll(f)
	if err != nil {
		return nil, herrors.Wrap(herrors.IoShort, err, "reading ascii payload")
	}
	opcodes := make([]int, len(payload))
	for i, c := range payload {
		if c != '0' && c != '1' {
			return nil, herrors.New(herrors.InvalidState, "ascii payload byte %q is not '0' or '1'", c)
		}
		opcodes[i] = int(c - '0')
	}
	return opcodes, nil
}
