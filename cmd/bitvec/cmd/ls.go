package cmd

import (
	"strconv"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newLsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List the stored bit vectors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			names, err := s.List()
			if err != nil {
				return err
			}

			data := make([][]string, 0, len(names))
			for _, name := range names {
				info, err := s.Stat(name)
				if err != nil {
					return err
				}
				data = append(data, []string{
					info.Name,
					strconv.FormatUint(info.NumBits, 10),
					bytefmt.ByteSize(uint64(info.Size)),
				})
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"name", "bits", "size"})
			table.SetBorder(true)
			table.AppendBulk(data)
			table.Render()
			return nil
		},
	}
}
