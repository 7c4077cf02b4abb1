package structure

import (
	"fmt"
	"strings"
)

// ValidationError lists every problem found in a Config, in check order.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid project config: " + strings.Join(e.Problems, "; ")
}

// Validate checks a Config for completeness and consistency. It returns nil
// when the config can be generated, or a *ValidationError holding all
// violations so they can be reported together.
func (c Config) Validate() error {
	var problems []string

	switch c.ProjectType {
	case ProjectPhoto, ProjectVideo, ProjectBoth:
	case "":
		problems = append(problems, "Project type is required")
	default:
		problems = append(problems, fmt.Sprintf("Invalid project type: %s", c.ProjectType))
	}

	switch c.WorkType {
	case WorkClient, WorkPersonal:
	case "":
		problems = append(problems, "Work type is required")
	default:
		problems = append(problems, fmt.Sprintf("Invalid work type: %s", c.WorkType))
	}

	if strings.TrimSpace(c.ProjectName) == "" {
		problems = append(problems, "Project name is required")
	} else {
		problems = append(problems, segmentProblems("Project name", c.ProjectName)...)
	}

	if strings.TrimSpace(c.ProjectDate) == "" {
		problems = append(problems, "Project date is required")
	} else if _, err := c.date(); err != nil {
		problems = append(problems, "Project date must be a valid date (YYYY-MM-DD)")
	}

	if c.WorkType == WorkClient {
		if strings.TrimSpace(c.ClientName) == "" {
			problems = append(problems, "Client name is required for client work")
		} else {
			problems = append(problems, segmentProblems("Client name", c.ClientName)...)
		}
	}

	if c.UseCameraFolders {
		if len(c.CameraAssignments) == 0 {
			problems = append(problems, "At least one camera assignment is required when using camera folders")
		}
		folders := make(map[string]int, len(c.CameraAssignments))
		for i, a := range c.CameraAssignments {
			if cleanFolderPart(a.Purpose) == "" || cleanFolderPart(a.Camera) == "" {
				problems = append(problems, fmt.Sprintf("Camera assignment %d requires a purpose and a camera", i+1))
				continue
			}
			name := a.FolderName()
			if first, ok := folders[name]; ok {
				problems = append(problems, fmt.Sprintf("Camera assignments %d and %d both use the folder %s", first, i+1, name))
				continue
			}
			folders[name] = i + 1
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// segmentProblems reports names that would not stay a single folder below
// their parent.
func segmentProblems(label, name string) []string {
	var problems []string
	if strings.ContainsAny(name, `/\`) {
		problems = append(problems, label+` must not contain "/" or "\"`)
	}
	if seg := FolderSegment(name); seg == "." || seg == ".." {
		problems = append(problems, label+` must not be "." or ".."`)
	}
	return problems
}
