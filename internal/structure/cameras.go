package structure

import (
	"fmt"
	"strings"
	"unicode"
)

// purposeAliases maps shorthand purposes to their canonical spelling.
var purposeAliases = map[string]string{
	"main":      "main",
	"primary":   "main",
	"bts":       "BTS",
	"behind":    "BTS",
	"secondary": "secondary",
	"sec":       "secondary",
	"drone":     "drone",
	"aerial":    "drone",
	"interview": "interview",
	"detail":    "detail",
	"backup":    "backup",
}

// Purposes lists the canonical camera purposes.
func Purposes() []string {
	return []string{"main", "BTS", "secondary", "drone", "interview", "detail", "backup"}
}

// FolderName returns "<purpose>-<camera>" with the camera lower-cased and
// both parts reduced to letters, digits and inner hyphens.
func (a CameraAssignment) FolderName() string {
	return cleanFolderPart(a.Purpose) + "-" + cleanFolderPart(strings.ToLower(a.Camera))
}

func cleanFolderPart(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == ' ' || r == '_' || r == '-':
			b.WriteRune('-')
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}

// ParseCameraAssignments parses a comma separated list of
// "purpose:camera[:role]" items, e.g. "main:lumix,BTS:DJI POCKET:bts".
// Known purpose aliases are normalised; unknown purposes are kept verbatim.
func ParseCameraAssignments(list string) ([]CameraAssignment, error) {
	var out []CameraAssignment
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		parts := strings.SplitN(item, ":", 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid camera format %q: use purpose:camera[:role]", item)
		}

		purpose := strings.TrimSpace(parts[0])
		camera := strings.TrimSpace(parts[1])
		if purpose == "" || camera == "" {
			return nil, fmt.Errorf("invalid camera format %q: purpose and camera are required", item)
		}
		if canonical, ok := purposeAliases[strings.ToLower(purpose)]; ok {
			purpose = canonical
		}

		a := CameraAssignment{Purpose: purpose, Camera: camera}
		if len(parts) == 3 {
			a.Role = Role(strings.ToLower(strings.TrimSpace(parts[2])))
		}
		out = append(out, a)
	}
	return out, nil
}
