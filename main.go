package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"moonlight/pkg/assembler"
	"moonlight/pkg/diag"
	"moonlight/pkg/source"
)

// errReported marks a failure whose diagnostic was already written.
var errReported = errors.New("assembly failed")

func newRootCommand(fsys source.FS) *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "moonlight sourceFile",
		Short: "Assembler front end for the moonlight instruction set",
		Long: `Moonlight reads one assembly source file, expands its .include
directives, and lays out the data section into a 32 KiB memory image.
Errors are reported with the file, line and column they came from.`,
		Version:       assembler.Version,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			a := assembler.New(fsys)
			a.MaxDepth = maxDepth
			res, err := a.Run(args[0])
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), diag.Render(err, a.FileName))
				return errReported
			}

			fmt.Fprintf(cmd.OutOrStdout(), "assembled %s: %d data entries, %d instructions, %d labels\n",
				args[0], len(res.Ast.Data), len(res.Ast.Instr), len(res.Symbols))
			return nil
		},
	}
	cmd.SetVersionTemplate("Moonlight version {{.Version}}\n")
	cmd.Flags().IntVar(&maxDepth, "max-include-depth", source.DefaultMaxDepth, "maximum .include nesting depth")
	cmd.Flags().AddFlagSet(logFlags())
	return cmd
}

// logFlags exposes glog's flags on the command. glog's -v shorthand is
// dropped so that -v prints the version; verbosity is set with --v=N.
func logFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("glog", pflag.ContinueOnError)
	flag.CommandLine.VisitAll(func(f *flag.Flag) {
		pf := pflag.PFlagFromGoFlag(f)
		pf.Shorthand = ""
		fs.AddFlag(pf)
	})
	return fs
}

func run(args []string, stdout, stderr io.Writer, fsys source.FS) int {
	if args == nil {
		// cobra falls back to os.Args on a nil slice.
		args = []string{}
	}
	cmd := newRootCommand(fsys)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(stderr, diag.Render(err, nil))
		}
		return 1
	}
	return 0
}

func main() {
	code := run(os.Args[1:], os.Stdout, os.Stderr, source.OSFS{})
	glog.Flush()
	os.Exit(code)
}
