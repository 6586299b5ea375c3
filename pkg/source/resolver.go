// Package source reads assembly files and expands their .include directives
// into a single token stream, rejecting include cycles.
package source

import (
	"path/filepath"
	"strings"

	"github.com/golang/glog"

	"moonlight/pkg/diag"
	"moonlight/pkg/scanner"
	"moonlight/pkg/token"
)

// DefaultMaxDepth bounds include nesting when Resolver.MaxDepth is unset.
const DefaultMaxDepth = 64

// Resolver expands includes. A Resolver accumulates its FileTable and
// IncludeGraph across calls and is not safe for concurrent use.
type Resolver struct {
	FS       FS
	Files    *FileTable
	Graph    *IncludeGraph
	MaxDepth int
}

// NewResolver returns a Resolver reading through fsys.
func NewResolver(fsys FS) *Resolver {
	return &Resolver{
		FS:       fsys,
		Files:    NewFileTable(),
		Graph:    NewIncludeGraph(),
		MaxDepth: DefaultMaxDepth,
	}
}

// Resolve scans entry and recursively splices every included file in place
// of its .include directive. The result holds no include directives and each
// token keeps the id of the file it was read from.
func (r *Resolver) Resolve(entry string) ([]token.Positioned, error) {
	name := filepath.Clean(entry)
	return r.resolve(name, r.Files.ID(name), 0)
}

func (r *Resolver) resolve(name string, id uint32, depth int) ([]token.Positioned, error) {
	maxDepth := r.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if depth > maxDepth {
		return nil, &diag.Error{
			Kind:  diag.CapacityError,
			Msg:   "include depth limit exceeded",
			Files: []string{name},
		}
	}

	toks, err := r.scanFile(name, id)
	if err != nil {
		return nil, err
	}

	for i := 0; i < len(toks); {
		if !toks[i].Is(token.Include) {
			i++
			continue
		}
		if i+1 >= len(toks) || toks[i+1].Kind != token.String {
			return nil, diag.Errorf(diag.SyntaxError, toks[i].Pos, "expected a string literal path after .include")
		}

		target := r.includePath(name, toks[i+1].Text)
		targetID := r.Files.ID(target)

		if r.Graph.Reaches(targetID, id) {
			return nil, &diag.Error{
				Kind:  diag.CycleError,
				Msg:   "include cycle detected",
				Files: []string{r.Files.Name(id), r.Files.Name(targetID)},
			}
		}
		r.Graph.Add(id, targetID)

		glog.V(1).Infof("including %s (file %d) from %s (file %d)", target, targetID, name, id)
		included, err := r.resolve(target, targetID, depth+1)
		if err != nil {
			if diag.KindOf(err) == diag.IOError {
				err = diag.At(err, toks[i+1].Pos)
			}
			return nil, err
		}

		merged := make([]token.Positioned, 0, i+len(included)+len(toks)-(i+2))
		merged = append(merged, toks[:i]...)
		merged = append(merged, included...)
		toks = append(merged, toks[i+2:]...)
		i += len(included)
	}

	return toks, nil
}

func (r *Resolver) scanFile(name string, id uint32) ([]token.Positioned, error) {
	raw, err := r.FS.ReadFile(name)
	if err != nil {
		return nil, &diag.Error{
			Kind:  diag.IOError,
			Msg:   "the file " + name + " does not exist or could not be read",
			Files: []string{name},
			Err:   err,
		}
	}
	src := strings.ReplaceAll(string(raw), "\r", "")

	toks, err := scanner.Scan(src, id)
	if err != nil {
		return nil, err
	}
	glog.V(2).Infof("scanned %s: %d tokens", name, len(toks))
	return toks, nil
}

// includePath resolves an include relative to the including file's
// directory. When nothing exists there, the path is taken as written,
// relative to the working directory.
func (r *Resolver) includePath(from, rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	local := filepath.Join(filepath.Dir(from), rel)
	if r.FS.Exists(local) {
		return local
	}
	if plain := filepath.Clean(rel); r.FS.Exists(plain) {
		return plain
	}
	return local
}
