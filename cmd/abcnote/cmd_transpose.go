package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/abcnote/abc"
)

func newTransposeCmd() *cobra.Command {
	var octaves int
	var voice string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "transpose [file]",
		Short: "Move the notes of a tune up or down by whole octaves",
		Long: `Move the notes of an ABC tune by whole octaves and print the result.

If no file is provided, reads the tune from stdin. Header lines are kept
as they are. With --voice only lines starting with [V:<voice>] move.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src io.Reader = cmd.InOrStdin()
			if len(args) == 0 {
				if overwrite {
					return fmt.Errorf("-w requires a file argument")
				}
			} else {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
				src = bytes.NewReader(data)
			}

			if !overwrite {
				return abc.Transpose(src, cmd.OutOrStdout(), octaves, voice)
			}

			var out bytes.Buffer
			if err := abc.Transpose(src, &out, octaves, voice); err != nil {
				return err
			}
			return os.WriteFile(args[0], out.Bytes(), 0644)
		},
	}

	cmd.Flags().IntVarP(&octaves, "octaves", "n", 1, "octaves to move by, negative to move down")
	cmd.Flags().StringVar(&voice, "voice", "", "only move lines of this voice")
	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
