package structure

// rawFootageRoot is the template entry that triggers camera fan-out.
const rawFootageRoot = "Footage/RAW"

// proxiesRoot holds proxy media for video branches.
const proxiesRoot = "Footage/Proxies"

// captureOneFolder holds the Capture One session for photo branches.
const captureOneFolder = "Capture One"

// defaultCameraFolder is used below the raw footage root when camera folders
// are turned off.
const defaultCameraFolder = "Camera 1"

// readmeName is the file written into every base path.
const readmeName = "README.txt"

// attribution closes every generated README.
const attribution = "Generated by Creative Structure"

type templateKey struct {
	media Media
	work  WorkType
}

var templates = map[templateKey][]string{
	{MediaPhoto, WorkClient}: {
		"RAW",
		"Edited",
		"Deliverables",
		"Contracts & Briefs",
		"Exports for Social-Print",
	},
	{MediaPhoto, WorkPersonal}: {
		"RAW",
		"Edited",
		"Exports for Social-Print",
	},
	{MediaVideo, WorkClient}: {
		"Footage",
		rawFootageRoot,
		"Edited",
		"Deliverables",
		"Contracts & Briefs",
		"Exports",
		"Thumbnail & Graphics",
		"Audio",
	},
	{MediaVideo, WorkPersonal}: {
		"Footage",
		rawFootageRoot,
		"Edited",
		"Exports",
		"Audio",
	},
}

var commonFolders = []string{
	"Client Communication",
	"Contracts & Invoices",
	"Reference & Inspiration",
}

var roleLabels = map[Role]string{
	RoleWide:      "Wide Shots",
	RoleClose:     "Close Ups",
	RoleDetail:    "Detail Shots",
	RoleBTS:       "Behind the Scenes",
	RoleDrone:     "Drone Footage",
	RoleInterview: "Interview",
	RoleBRoll:     "B-Roll",
}

// TemplateFolders returns a copy of the folder template for a media branch
// and work type. The second result is false if no template exists.
func TemplateFolders(media Media, work WorkType) ([]string, bool) {
	folders, ok := templates[templateKey{media, work}]
	if !ok {
		return nil, false
	}
	return append([]string(nil), folders...), true
}

// CommonFolders returns the folders added to every base path.
func CommonFolders() []string {
	return append([]string(nil), commonFolders...)
}

// RoleLabel returns the folder name used for a camera role. Roles without a
// mapping are returned unchanged.
func RoleLabel(role Role) string {
	if label, ok := roleLabels[role]; ok {
		return label
	}
	return string(role)
}
