// Command mldump prints the intermediate results of each assembler stage:
// the resolved token stream, the Ast, the symbol table and the used part of
// the data memory image.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"

	"moonlight/pkg/assembler"
	"moonlight/pkg/diag"
	"moonlight/pkg/layout"
	"moonlight/pkg/source"
)

var stages = []string{"tokens", "ast", "symbols", "memory"}

func main() {
	stage := flag.String("stage", "all", "stage to dump: tokens, ast, symbols, memory or all")
	color := flag.Bool("color", true, "colorize pretty-printed output")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: mldump [-stage name] [-color=false] file.asm")
		os.Exit(2)
	}

	err := dump(os.Stdout, source.OSFS{}, flag.Arg(0), *stage, *color)
	glog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func dump(w io.Writer, fsys source.FS, path, stage string, color bool) error {
	if stage != "all" && !slices.Contains(stages, stage) {
		return fmt.Errorf("unknown stage %q", stage)
	}

	a := assembler.New(fsys)
	res, err := a.Run(path)
	if err != nil {
		return fmt.Errorf("%s", diag.Render(err, a.FileName))
	}

	printer := pp.New()
	printer.SetOutput(w)
	printer.SetColoringEnabled(color)

	want := func(s string) bool { return stage == "all" || stage == s }

	if want("tokens") {
		fmt.Fprintf(w, "Tokens (%d)\n", len(res.Tokens))
		for _, tok := range res.Tokens {
			fmt.Fprintf(w, "  %-12s %s\n", a.FileName(tok.Pos.File), tok)
		}
		fmt.Fprintln(w)
	}
	if want("ast") {
		fmt.Fprintln(w, "AST")
		printer.Println(res.Ast)
		fmt.Fprintln(w)
	}
	if want("symbols") {
		fmt.Fprintln(w, "Symbols")
		printer.Println(res.Symbols)
		fmt.Fprintln(w)
	}
	if want("memory") {
		used := usedPrefix(res.Memory)
		fmt.Fprintf(w, "Data memory (%d of %d bytes)\n", used, layout.MemorySize)
		fmt.Fprint(w, hex.Dump(res.Memory[:used]))
	}
	return nil
}

// usedPrefix is the length of mem up to its last cell that is not FillByte.
func usedPrefix(mem *layout.DataMemory) int {
	for i := len(mem) - 1; i >= 0; i-- {
		if mem[i] != layout.FillByte {
			return i + 1
		}
	}
	return 0
}
