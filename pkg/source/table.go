package source

// UnknownFile is the name reported for ids that were never assigned.
const UnknownFile = "Unknown"

// FileTable is a bijection between file ids and paths. Ids count up from 0,
// which is the entry file of a run.
type FileTable struct {
	names []string
	ids   map[string]uint32
}

func NewFileTable() *FileTable {
	return &FileTable{ids: make(map[string]uint32)}
}

// ID returns the id of path, assigning the next free id if path is new.
func (ft *FileTable) ID(path string) uint32 {
	if id, ok := ft.ids[path]; ok {
		return id
	}
	id := uint32(len(ft.names))
	ft.names = append(ft.names, path)
	ft.ids[path] = id
	return id
}

// Lookup returns the id of path without assigning one.
func (ft *FileTable) Lookup(path string) (uint32, bool) {
	id, ok := ft.ids[path]
	return id, ok
}

// Name returns the path registered for id.
func (ft *FileTable) Name(id uint32) string {
	if int(id) >= len(ft.names) {
		return UnknownFile
	}
	return ft.names[id]
}

// Len is the number of registered files.
func (ft *FileTable) Len() int {
	return len(ft.names)
}

// IncludeGraph records, for each file, the files it directly includes.
// Edges are only ever added.
type IncludeGraph struct {
	edges map[uint32][]uint32
}

func NewIncludeGraph() *IncludeGraph {
	return &IncludeGraph{edges: make(map[uint32][]uint32)}
}

// Add records that from includes to. Repeated edges are stored once.
func (g *IncludeGraph) Add(from, to uint32) {
	for _, existing := range g.edges[from] {
		if existing == to {
			return
		}
	}
	g.edges[from] = append(g.edges[from], to)
}

// Includes returns the files directly included by id.
func (g *IncludeGraph) Includes(id uint32) []uint32 {
	return g.edges[id]
}

// Reaches reports whether to is reachable from from, counting from == to.
func (g *IncludeGraph) Reaches(from, to uint32) bool {
	visited := make(map[uint32]bool)
	var visit func(uint32) bool
	visit = func(cur uint32) bool {
		if cur == to {
			return true
		}
		if visited[cur] {
			return false
		}
		visited[cur] = true
		for _, next := range g.edges[cur] {
			if visit(next) {
				return true
			}
		}
		return false
	}
	return visit(from)
}
