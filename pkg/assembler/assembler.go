// Package assembler runs the front end stages in order: include resolution,
// parsing, symbol assignment and data memory materialization.
package assembler

import (
	"github.com/golang/glog"

	"moonlight/pkg/layout"
	"moonlight/pkg/parser"
	"moonlight/pkg/source"
	"moonlight/pkg/token"
)

// Version is the assembler release.
const Version = "0.1.0"

// Result is everything a successful run produces.
type Result struct {
	Tokens  []token.Positioned
	Ast     *parser.Ast
	Symbols layout.SymbolTable
	Memory  *layout.DataMemory
}

// Assembler owns the state of one run. Create a new one per entry file.
type Assembler struct {
	FS       source.FS
	MaxDepth int

	resolver *source.Resolver
}

// New returns an Assembler reading sources through fsys.
func New(fsys source.FS) *Assembler {
	return &Assembler{FS: fsys, MaxDepth: source.DefaultMaxDepth}
}

// Run assembles the program rooted at path. The first error stops the run and
// no partial result is returned.
func (a *Assembler) Run(path string) (*Result, error) {
	a.resolver = source.NewResolver(a.FS)
	a.resolver.MaxDepth = a.MaxDepth

	toks, err := a.resolver.Resolve(path)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("resolved %s: %d tokens from %d files", path, len(toks), a.resolver.Files.Len())

	ast, err := parser.Parse(toks)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("parsed %d data entries, %d instruction entries", len(ast.Data), len(ast.Instr))

	syms, err := layout.BuildSymbolTable(ast)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("symbol table holds %d labels", len(syms))

	mem, err := layout.Materialize(ast)
	if err != nil {
		return nil, err
	}

	return &Result{Tokens: toks, Ast: ast, Symbols: syms, Memory: mem}, nil
}

// Files returns the file table of the last run, or nil before the first run.
func (a *Assembler) Files() *source.FileTable {
	if a.resolver == nil {
		return nil
	}
	return a.resolver.Files
}

// FileName maps a position's file id to its path for diagnostics.
func (a *Assembler) FileName(id uint32) string {
	if ft := a.Files(); ft != nil {
		return ft.Name(id)
	}
	return source.UnknownFile
}
