package structure

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// keepFile is written into every planned folder so empty folders survive
// archiving.
const keepFile = ".keep"

// archiveSuffix is appended to the sanitized project name.
const archiveSuffix = "-structure.zip"

// ArchiveEntry is a single file to be written into the archive.
type ArchiveEntry struct {
	Path    string
	Content []byte
}

// ArchiveEntries returns one empty <path>/.keep entry per planned folder,
// followed by every file entry verbatim.
func (p *Plan) ArchiveEntries() []ArchiveEntry {
	entries := make([]ArchiveEntry, 0, len(p.Paths)+len(p.Files))
	for _, path := range p.Paths {
		entries = append(entries, ArchiveEntry{Path: path + "/" + keepFile, Content: []byte{}})
	}
	for _, f := range p.Files {
		entries = append(entries, ArchiveEntry{Path: f.Path, Content: []byte(f.Content)})
	}
	return entries
}

// ArchiveName returns "<sanitized-project-name>-structure.zip". Accented
// letters are folded to ASCII, characters outside [A-Za-z0-9-_ ] are
// stripped, and runs of whitespace become a single "-".
func ArchiveName(projectName string) string {
	return SanitizeName(projectName) + archiveSuffix
}

// SanitizeName reduces a name to a portable file name. It never returns an
// empty string.
func SanitizeName(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	cleaned := strings.Join(strings.Fields(b.String()), "-")
	if cleaned == "" {
		return "project"
	}
	return cleaned
}
