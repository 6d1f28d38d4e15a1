package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPutCmd(a *app) *cobra.Command {
	var hexInput bool

	putCmd := &cobra.Command{
		Use:   "put <name> <pattern>",
		Short: "Store a bit vector",
		Long: `put parses a bit pattern (or hex bytes with --hex) and stores it in the
data directory under name, replacing any vector of the same name.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseVector(args[1], hexInput)
			if err != nil {
				return err
			}
			s, err := a.store()
			if err != nil {
				return err
			}
			if err := s.Put(args[0], v); err != nil {
				return err
			}
			a.logger.Info("bit vector stored", zap.String("name", args[0]), zap.Int("bits", v.Len()))
			return nil
		},
	}

	putCmd.Flags().BoolVar(&hexInput, "hex", false, "whether the input is hex encoded bytes")
	return putCmd
}

func newGetCmd(a *app) *cobra.Command {
	var hexOutput bool

	getCmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Print a stored bit vector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			v, err := s.Get(args[0])
			if err != nil {
				return err
			}
			if hexOutput {
				fmt.Fprintf(cmd.OutOrStdout(), "%x\n", v.Bytes())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
			return nil
		},
	}

	getCmd.Flags().BoolVar(&hexOutput, "hex", false, "print the canonical bytes in hex")
	return getCmd
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>...",
		Short: "Delete stored bit vectors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := s.Delete(name); err != nil {
					return err
				}
				a.logger.Info("bit vector deleted", zap.String("name", name))
			}
			return nil
		},
	}
}

// dumpConfig dumps the fields of a vector instead of its String form.
var dumpConfig = spew.ConfigState{Indent: " ", DisableMethods: true}

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <name>...",
		Short: "Dump the internal state of stored bit vectors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			vectors, err := s.LoadAll(cmd.Context(), args)
			if err != nil {
				return err
			}
			for _, name := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ", name)
				dumpConfig.Fdump(cmd.OutOrStdout(), vectors[name])
			}
			return nil
		},
	}
}
