package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/abcnote/freq"
	"github.com/dhamidi/abcnote/workspace"
)

func newWatchCmd() *cobra.Command {
	var a4 float64
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Check .abc files again whenever they change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("stat %s: %w", dir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			ws := workspace.New(dir, workspace.WithTable(freq.New(a4)))
			return runWatch(ctx, ws, interval, cmd.OutOrStdout())
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Second, "how often to look for changes")
	addA4Flag(cmd, &a4)

	return cmd
}

func runWatch(ctx context.Context, ws *workspace.Workspace, interval time.Duration, w io.Writer) error {
	fw := workspace.NewFileWatcher(ws, func(c workspace.Change) {
		if c.Removed {
			fmt.Fprintf(w, "%s: removed\n", c.Path)
			return
		}
		f := ws.GetFile(c.Path)
		if f == nil {
			return
		}
		fmt.Fprintf(w, "%s: %d notes, %s, %d diagnostics\n",
			c.Path, len(f.Notes), formatLength(f.Duration()), len(f.Diagnostics))
		printDiagnostics(w, f)
	})
	fw.SetInterval(interval)
	fw.Start()
	defer fw.Stop()

	<-ctx.Done()
	return nil
}
