package sbp

import (
	"strings"

	"sbp-go/internal/model"
	"sbp-go/internal/structure"
)

// ResolveCameras replaces camera names that match an entry of the catalogue
// with the catalogue spelling. Matching ignores case and treats "-" and "_"
// as spaces, so "dji-pocket" resolves to "DJI POCKET". Unknown cameras are
// kept as typed.
func ResolveCameras(assignments []structure.CameraAssignment, catalogue []model.Camera) []structure.CameraAssignment {
	known := make(map[string]string, len(catalogue))
	for _, c := range catalogue {
		known[cameraKey(c.Name)] = c.Name
	}

	out := make([]structure.CameraAssignment, len(assignments))
	for i, a := range assignments {
		if name, ok := known[cameraKey(a.Camera)]; ok {
			a.Camera = name
		}
		out[i] = a
	}
	return out
}

func cameraKey(name string) string {
	return strings.NewReplacer("-", " ", "_", " ").Replace(strings.ToLower(strings.TrimSpace(name)))
}
