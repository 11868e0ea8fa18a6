package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/abcnote/abc"
	"github.com/dhamidi/abcnote/format"
	"github.com/dhamidi/abcnote/freq"
)

func newNotesCmd() *cobra.Command {
	var outputFormat string
	var a4 float64
	var skipErrors bool

	cmd := &cobra.Command{
		Use:   "notes [file]",
		Short: "Print the notes of an ABC tune",
		Long: `Decode an ABC tune and print one note per line.

If no file is provided, reads the tune from stdin. Rests print with
frequency 0. Formats:

  line   <frequency>\t<duration ms>
  json   one JSON object per note
  c      a C array initializer for firmware`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := bufio.NewWriter(cmd.OutOrStdout())
			enc, err := format.New(outputFormat, out)
			if err != nil {
				return err
			}

			var src io.Reader = cmd.InOrStdin()
			name := "<stdin>"
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open tune: %w", err)
				}
				defer f.Close()
				src = f
				name = args[0]
			}

			p := abc.New(bufio.NewReader(src), abc.WithFile(name), abc.WithTable(freq.New(a4)))
			if err := runNotes(p, enc, skipErrors, cmd.ErrOrStderr()); err != nil {
				out.Flush()
				return err
			}
			return out.Flush()
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format ("+strings.Join(format.Names(), ", ")+")")
	cmd.Flags().BoolVar(&skipErrors, "skip-errors", true, "report unplayable notes on stderr and keep going")
	addA4Flag(cmd, &a4)

	return cmd
}

func runNotes(p *abc.Parser, enc format.Encoder, skipErrors bool, stderr io.Writer) error {
	for {
		n, err := p.Next()
		if err == io.EOF {
			break
		}
		var derr *abc.DecodeError
		if errors.As(err, &derr) {
			if !skipErrors {
				return err
			}
			fmt.Fprintln(stderr, derr)
			continue
		}
		if err != nil {
			return err
		}
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
