package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/spf13/cobra"

	"github.com/dhamidi/abcnote/freq"
	"github.com/dhamidi/abcnote/workspace"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

func newCheckCmd() *cobra.Command {
	var a4 float64
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check <path>",
		Short: "Report skipped notation and unplayable notes in tunes",
		Long: `Decode an .abc file, every .abc file below a directory, or every .abc
entry of a zip archive, and print what the parser skipped.

Exits with status 1 when any note falls outside the frequency table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			ws := workspace.New(path, workspace.WithTable(freq.New(a4)))
			if err := loadPath(ws, path); err != nil {
				return err
			}
			return runCheck(ws, cmd.OutOrStdout(), quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the summary")
	addA4Flag(cmd, &a4)

	return cmd
}

func loadPath(ws *workspace.Workspace, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	switch {
	case info.IsDir():
		err = ws.ScanAll()
	case filepath.Ext(path) == ".zip":
		err = ws.ScanZip(path)
	case filepath.Ext(path) == workspace.Ext:
		err = ws.ScanFile(path)
	default:
		return fmt.Errorf("unsupported file type: %s (expected %s, .zip or a directory)", filepath.Ext(path), workspace.Ext)
	}
	if err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}
	return nil
}

func runCheck(ws *workspace.Workspace, w io.Writer, quiet bool) error {
	if !quiet {
		for _, f := range ws.Files() {
			printDiagnostics(w, f)
		}
	}

	s := ws.Summary()
	printSummary(w, s)

	if s.OutOfRange > 0 {
		return fmt.Errorf("%d notes out of range", s.OutOfRange)
	}
	return nil
}

func printDiagnostics(w io.Writer, f *workspace.FileInfo) {
	for _, d := range f.Diagnostics {
		fmt.Fprintf(w, "%s [%s]\n", d, d.Kind)
	}
	if f.ReadErr != nil {
		fmt.Fprintf(w, "%s: %s\n", f.Path, f.ReadErr)
	}
}

func printSummary(w io.Writer, s workspace.Summary) {
	fmt.Fprintf(w, "Files:       %s (%s)\n", humanize.Comma(int64(s.Files)), humanize.Bytes(s.Bytes))
	fmt.Fprintf(w, "Notes:       %s (%s rests)\n", humanize.Comma(int64(s.Notes)), humanize.Comma(int64(s.Rests)))
	fmt.Fprintf(w, "Length:      %s\n", formatLength(s.Duration))
	fmt.Fprintf(w, "Diagnostics: %s (%s out of range)\n", humanize.Comma(int64(s.Diagnostics)), humanize.Comma(int64(s.OutOfRange)))
}

func formatLength(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	return durafmt.Parse(d).LimitFirstN(2).Format(shortUnits)
}
