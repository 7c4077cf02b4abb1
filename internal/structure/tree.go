package structure

import (
	"sort"
	"strings"
)

const (
	glyphParent = "📂"
	glyphLeaf   = "📁"
	glyphFile   = "📄"
)

// Preview renders the plan as an indented tree. Folders come first in
// lexicographic path order, each printed once; file entries follow, indented
// to the depth of their parent folder.
func (p *Plan) Preview() string {
	return RenderTree(p.Paths, p.Files)
}

// RenderTree renders paths and files as tree text. The input slices are not
// modified.
func RenderTree(paths []string, files []FileEntry) string {
	if len(paths) == 0 && len(files) == 0 {
		return "No folders to create"
	}

	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	// Every proper ancestor of a planned path has descendants.
	parents := make(map[string]struct{})
	for _, path := range sorted {
		for i := 0; i < len(path); i++ {
			if path[i] == '/' {
				parents[path[:i]] = struct{}{}
			}
		}
	}

	printed := make(map[string]struct{}, len(sorted))
	var lines []string

	for _, path := range sorted {
		segments := strings.Split(path, "/")
		prefix := ""
		for depth, segment := range segments {
			if depth == 0 {
				prefix = segment
			} else {
				prefix += "/" + segment
			}
			if _, ok := printed[prefix]; ok {
				continue
			}
			printed[prefix] = struct{}{}

			glyph := glyphLeaf
			if _, ok := parents[prefix]; ok {
				glyph = glyphParent
			}
			lines = append(lines, strings.Repeat("  ", depth)+glyph+" "+segment)
		}
	}

	for _, f := range files {
		segments := strings.Split(f.Path, "/")
		lines = append(lines, strings.Repeat("  ", len(segments)-1)+glyphFile+" "+segments[len(segments)-1])
	}

	return strings.Join(lines, "\n")
}
