// Command huffgo encodes or decodes a file using classical Huffman coding,
// in packed-bit or ASCII codeword mode. Flag parsing is built on
// spf13/cobra.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nwillc/huffgo/internal/config"
	"github.com/nwillc/huffgo/internal/herrors"
	"github.com/nwillc/huffgo/internal/logging"
	"github.com/nwillc/huffgo/internal/pipeline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Fail("huffgo failed", err)
	}
}

func newRootCmd() *cobra.Command {
	var (
		input   string
		output  string
		encode  bool
		decode  bool
		ascii   bool
		print   bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:           "huffgo",
		Short:         "Compress or decompress a file using classical Huffman coding",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkRepeatedFlags(os.Args[1:]); err != nil {
				return err
			}
			if err := config.Validate(input, output, encode, decode); err != nil {
				return err
			}

			logging.Setup(verbose)

			mode := config.Encode
			if decode {
				mode = config.Decode
			}
			cfg := config.Config{
				InputPath:  input,
				OutputPath: output,
				Mode:       mode,
				ASCII:      ascii,
				Print:      print,
			}

			if mode == config.Encode {
				return pipeline.Encode(cfg, cmd.OutOrStdout())
			}
			return pipeline.Decode(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&input, "input", "i", "", "input file")
	flags.StringVarP(&output, "output", "o", "", "output file")
	flags.BoolVarP(&encode, "encode", "e", false, "encode the input file")
	flags.BoolVarP(&decode, "decode", "d", false, "decode the input file")
	flags.BoolVarP(&ascii, "ascii", "a", false, "ASCII mode: codewords as '0'/'1' bytes")
	flags.BoolVarP(&print, "print", "p", false, "also print the encoded string to standard output")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

// checkRepeatedFlags rejects repeated -i/-o/-e/-d flags as a usage error,
// distinct from cobra/pflag's default last-value-wins behavior.
func checkRepeatedFlags(args []string) error {
	counts := map[string]int{}
	tracked := map[string]string{
		"-i": "input", "--input": "input",
		"-o": "output", "--output": "output",
		"-e": "encode", "--encode": "encode",
		"-d": "decode", "--decode": "decode",
	}
	for _, a := range args {
		if name, ok := tracked[a]; ok {
			counts[name]++
		}
	}
	for name, n := range counts {
		if n > 1 {
			return herrors.New(herrors.UsageError, "flag for %q given more than once", name)
		}
	}
	return nil
}
