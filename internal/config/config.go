// Package config defines the immutable run configuration for a single
// encode or decode invocation. A Config is built once by the CLI after
// flag validation and passed explicitly into the pipeline; nothing in
// this package mutates package-level state.
package config

import "github.com/nwillc/huffgo/internal/herrors"

// Mode selects the pipeline direction.
type Mode int

const (
	// Encode compresses InputPath into OutputPath.
	Encode Mode = iota
	// Decode decompresses InputPath into OutputPath.
	Decode
)

// Config is the fully-validated, immutable set of options a single encode
// or decode run needs.
type Config struct {
	InputPath  string
	OutputPath string
	Mode       Mode
	ASCII      bool
	Print      bool
}

// Validate enforces the CLI's usage-error contract: input and output paths
// are required, and exactly one of hasEncode/hasDecode must be true.
// Repeated flags are not detected here; cmd/huffgo checks for them
// separately before calling Validate.
func Validate(input, output string, hasEncode, hasDecode bool) error {
	if input == "" {
		return herrors.New(herrors.UsageError, "input path (-i) is required")
	}
	if output == "" {
		return herrors.New(herrors.UsageError, "output path (-o) is required")
	}
	if hasEncode == hasDecode {
		return herrors.New(herrors.UsageError, "exactly one of -e or -d must be given")
	}
	return nil
}
