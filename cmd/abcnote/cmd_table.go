package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dhamidi/abcnote/freq"
)

func newTableCmd() *cobra.Command {
	var a4 float64
	var legacy bool

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the frequency table notes are looked up in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if legacy {
				return printLetterTable(cmd.OutOrStdout())
			}
			return printTable(cmd.OutOrStdout(), freq.New(a4))
		},
	}

	cmd.Flags().BoolVar(&legacy, "legacy", false, "print the per-letter table of the first firmware instead")
	addA4Flag(cmd, &a4)

	return cmd
}

func addA4Flag(cmd *cobra.Command, a4 *float64) {
	cmd.Flags().Float64Var(a4, "a4", freq.DefaultA4, "concert pitch of A4 in Hz")
}

func printTable(w io.Writer, t *freq.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "index\tnote\tHz\t")
	for i := 0; i < t.Len(); i++ {
		hz, _ := t.At(i)
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t\n", i, freq.Name(i), hz)
	}
	return tw.Flush()
}

func printLetterTable(w io.Writer) error {
	const letters = "CDEFGAB"
	for i, row := range freq.LetterTable {
		name := "rest"
		if i < len(freq.LetterTable)-1 {
			name = fmt.Sprintf("%c%d", letters[i%7], 3+i/7)
		}
		if _, err := fmt.Fprintf(w, "{%d, %d},\t// %s\n", row[0], row[1], name); err != nil {
			return err
		}
	}
	return nil
}
