package structure

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// pathSet collects paths in insertion order and drops exact duplicates.
type pathSet struct {
	seen  map[string]struct{}
	paths []string
}

func newPathSet() *pathSet {
	return &pathSet{seen: make(map[string]struct{})}
}

func (s *pathSet) add(path string) {
	if _, ok := s.seen[path]; ok {
		return
	}
	s.seen[path] = struct{}{}
	s.paths = append(s.paths, path)
}

func (s *pathSet) has(path string) bool {
	_, ok := s.seen[path]
	return ok
}

// Generate builds the folder plan for a config. The config must pass
// Validate; otherwise Generate returns an error wrapping ErrInvalidConfig
// and no plan.
func Generate(cfg Config) (*Plan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	branches, err := cfg.ProjectType.branches()
	if err != nil {
		return nil, err
	}

	date, err := cfg.date()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	set := newPathSet()
	var files []FileEntry

	for _, media := range branches {
		base := basePath(media, cfg, date)

		folders, ok := TemplateFolders(media, cfg.WorkType)
		if !ok {
			return nil, fmt.Errorf("%w: no template for %s/%s", ErrInvalidConfig, media, cfg.WorkType)
		}

		for _, folder := range folders {
			full := base + "/" + folder
			set.add(full)
			if media == MediaVideo && folder == rawFootageRoot {
				addRawCameraFolders(set, full, cfg)
			}
		}

		switch media {
		case MediaPhoto:
			if cfg.IncludeCaptureOne {
				set.add(base + "/" + captureOneFolder)
			}
		case MediaVideo:
			if cfg.IncludeProxies {
				proxies := base + "/" + proxiesRoot
				if !set.has(proxies) {
					set.add(proxies)
					if cfg.UseCameraFolders {
						addCameraFolders(set, proxies, cfg.CameraAssignments)
					}
				}
			}
		}

		for _, folder := range commonFolders {
			set.add(base + "/" + folder)
		}

		files = append(files, FileEntry{
			Path:    base + "/" + readmeName,
			Content: readmeContent(cfg, date),
		})
	}

	return &Plan{
		Paths:   set.paths,
		Files:   files,
		Summary: summarize(cfg, date),
	}, nil
}

// basePath returns <BRANCH>/<work segment>/<project folder>.
func basePath(media Media, cfg Config, date time.Time) string {
	segments := []string{string(media)}

	switch cfg.WorkType {
	case WorkClient:
		segments = append(segments, WorkClient.Label())
		if client := FolderSegment(cfg.ClientName); client != "" {
			segments = append(segments, client)
		}
	case WorkPersonal:
		segments = append(segments, WorkPersonal.Label(), strconv.Itoa(date.Year()))
	}

	segments = append(segments, ProjectFolderName(cfg.WorkType, FolderSegment(cfg.ProjectName), date))
	return strings.Join(segments, "/")
}

// FolderSegment trims a user supplied name and collapses each run of inner
// whitespace to a single space.
func FolderSegment(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// ProjectFolderName formats the project folder: "<date>-<name>" for client
// work and the bare name for personal work.
func ProjectFolderName(work WorkType, name string, date time.Time) string {
	if work == WorkClient {
		return date.Format(dateLayout) + "-" + name
	}
	return name
}

// ProjectFolder returns the project folder name for the config, or "" if the
// project date does not parse.
func (c Config) ProjectFolder() string {
	date, err := c.date()
	if err != nil {
		return ""
	}
	return ProjectFolderName(c.WorkType, FolderSegment(c.ProjectName), date)
}

// addRawCameraFolders fans out camera folders below the raw footage root, or
// adds the single default camera folder when camera folders are off.
func addRawCameraFolders(set *pathSet, root string, cfg Config) {
	if !cfg.UseCameraFolders {
		set.add(root + "/" + defaultCameraFolder)
		return
	}
	addCameraFolders(set, root, cfg.CameraAssignments)
}

func addCameraFolders(set *pathSet, root string, assignments []CameraAssignment) {
	for _, a := range assignments {
		camera := root + "/" + a.FolderName()
		set.add(camera)
		if a.Role != "" && a.Role != RoleMain {
			set.add(camera + "/" + RoleLabel(a.Role))
		}
	}
}

func readmeContent(cfg Config, date time.Time) string {
	lines := []string{
		"Project: " + FolderSegment(cfg.ProjectName),
		"Date: " + date.Format(displayDateLayout),
		"Type: " + cfg.ProjectType.Label(),
		"Work Type: " + cfg.WorkType.Label(),
	}
	if cfg.WorkType == WorkClient {
		lines = append(lines, "Client: "+FolderSegment(cfg.ClientName))
	}
	lines = append(lines, "", attribution, "")
	return strings.Join(lines, "\n")
}

func summarize(cfg Config, date time.Time) Summary {
	s := Summary{
		ProjectType: cfg.ProjectType.Label(),
		WorkType:    cfg.WorkType.Label(),
		ProjectName: FolderSegment(cfg.ProjectName),
		ProjectDate: date.Format(displayDateLayout),
		Features:    []string{},
	}
	if cfg.WorkType == WorkClient {
		s.ClientName = FolderSegment(cfg.ClientName)
	}

	if cfg.IncludeCaptureOne {
		s.Features = append(s.Features, "Capture One folder")
	}
	if cfg.IncludeProxies {
		s.Features = append(s.Features, "Proxies folder")
	}
	if n := len(cfg.CameraAssignments); cfg.UseCameraFolders && n > 0 {
		s.Features = append(s.Features, fmt.Sprintf("%d camera setup", n))
	}
	return s
}
