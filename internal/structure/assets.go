package structure

// assetsRoot is the shared library folder that sits next to PHOTO and VIDEO.
const assetsRoot = "Assets & Resources"

var assetsTemplate = []struct {
	folder   string
	children []string
}{
	{"Presets & Templates", []string{"Lightroom Presets", "LUTs for Video", "Photoshop Templates", "Final Cut Pro-Premiere Templates"}},
	{"Stock Footage & Images", []string{"Videos", "Photos"}},
	{"Music & Sound Effects", []string{"Licensed Music", "Sound Effects"}},
}

// GenerateAssets builds the plan for the shared Assets & Resources library.
func GenerateAssets() *Plan {
	set := newPathSet()
	for _, group := range assetsTemplate {
		parent := assetsRoot + "/" + group.folder
		set.add(parent)
		for _, child := range group.children {
			set.add(parent + "/" + child)
		}
	}

	return &Plan{
		Paths: set.paths,
		Files: []FileEntry{{
			Path:    assetsRoot + "/" + readmeName,
			Content: "Assets & Resources\n\nShared presets, stock media and music for all projects.\n\n" + attribution + "\n",
		}},
		Summary: Summary{
			ProjectType: "Assets",
			WorkType:    "Shared Library",
			ProjectName: assetsRoot,
			Features:    []string{},
		},
	}
}
