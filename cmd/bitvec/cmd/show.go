package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/bitvec/bitvec"
)

// parseVector reads a bit vector from a pattern of '1' and '.' (or '0'), or
// from hex encoded LSB 0 bytes if hexInput is set.
func parseVector(arg string, hexInput bool) (*bitvec.BitVec, error) {
	if !hexInput {
		return bitvec.Parse(arg)
	}
	b, err := hex.DecodeString(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return bitvec.FromBytes(b), nil
}

func newShowCmd() *cobra.Command {
	var hexInput bool

	showCmd := &cobra.Command{
		Use:   "show <pattern>",
		Short: "Print a bit vector in all of its forms",
		Long: `show parses a bit pattern such as "1..1 1" (or hex bytes with --hex)
and prints its display form, debug form, length and canonical bytes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseVector(args[0], hexInput)
			if err != nil {
				return err
			}
			printVector(cmd, v)
			return nil
		},
	}

	showCmd.Flags().BoolVar(&hexInput, "hex", false, "whether the input is hex encoded bytes")
	return showCmd
}

func printVector(cmd *cobra.Command, v *bitvec.BitVec) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "display: %s\n", v)
	fmt.Fprintf(out, "debug:   %#v\n", v)
	fmt.Fprintf(out, "len:     %d\n", v.Len())
	fmt.Fprintf(out, "bytes:   %x\n", v.Bytes())
}
