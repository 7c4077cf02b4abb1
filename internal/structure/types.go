// Package structure builds folder plans for photo and video projects.
//
// Everything in this package is pure: a Config value goes in, a Plan comes
// out, and nothing touches the file system or any shared state.
package structure

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// dateLayout is the ISO calendar date used for input and folder names.
const dateLayout = "2006-01-02"

// displayDateLayout is the long en-US date shown in summaries and READMEs.
const displayDateLayout = "January 2, 2006"

// ErrInvalidConfig is returned by Generate when it is handed a config that
// does not pass validation.
var ErrInvalidConfig = errors.New("invalid project config")

// ProjectType selects which media branches a plan contains.
type ProjectType string

const (
	ProjectPhoto ProjectType = "photo"
	ProjectVideo ProjectType = "video"
	ProjectBoth  ProjectType = "both"
)

// WorkType separates commissioned work from personal projects.
type WorkType string

const (
	WorkClient   WorkType = "client"
	WorkPersonal WorkType = "personal"
)

// Label returns the display form of the work type.
func (w WorkType) Label() string {
	switch w {
	case WorkClient:
		return "Client Work"
	case WorkPersonal:
		return "Personal Work"
	default:
		return string(w)
	}
}

// Label returns the display form of the project type.
func (p ProjectType) Label() string {
	switch p {
	case ProjectPhoto:
		return "Photography"
	case ProjectVideo:
		return "Videography"
	case ProjectBoth:
		return "Photo + Video"
	default:
		return string(p)
	}
}

// branches maps a project type to the media branches it produces, in the
// order they are generated.
func (p ProjectType) branches() ([]Media, error) {
	switch p {
	case ProjectPhoto:
		return []Media{MediaPhoto}, nil
	case ProjectVideo:
		return []Media{MediaVideo}, nil
	case ProjectBoth:
		return []Media{MediaPhoto, MediaVideo}, nil
	default:
		return nil, fmt.Errorf("%w: unhandled project type %q", ErrInvalidConfig, string(p))
	}
}

// Media is a single branch of a plan.
type Media string

const (
	MediaPhoto Media = "PHOTO"
	MediaVideo Media = "VIDEO"
)

// Role tags what a camera is used for. Non-main roles get their own nested
// folder below the camera folder.
type Role string

const (
	RoleMain      Role = "main"
	RoleWide      Role = "wide"
	RoleClose     Role = "close"
	RoleDetail    Role = "detail"
	RoleBTS       Role = "bts"
	RoleDrone     Role = "drone"
	RoleInterview Role = "interview"
	RoleBRoll     Role = "broll"
	RoleSecondary Role = "secondary"
	RoleBackup    Role = "backup"
)

// Roles lists the recognised camera roles in display order.
func Roles() []Role {
	return []Role{RoleMain, RoleWide, RoleClose, RoleDetail, RoleBTS, RoleDrone, RoleInterview, RoleBRoll, RoleSecondary, RoleBackup}
}

// CameraAssignment binds a camera to the purpose it serves on the shoot.
type CameraAssignment struct {
	Purpose string `json:"purpose"`
	Camera  string `json:"camera"`
	Role    Role   `json:"role,omitempty"`
}

// Config is the user supplied description of a project.
type Config struct {
	ProjectType       ProjectType        `json:"projectType"`
	WorkType          WorkType           `json:"workType"`
	ProjectName       string             `json:"projectName"`
	ProjectDate       string             `json:"projectDate"` // yyyy-mm-dd
	ClientName        string             `json:"clientName,omitempty"`
	IncludeCaptureOne bool               `json:"includeCaptureOne"`
	IncludeProxies    bool               `json:"includeProxies"`
	UseCameraFolders  bool               `json:"useCameraFolders"`
	CameraAssignments []CameraAssignment `json:"cameraAssignments,omitempty"`
}

// date parses ProjectDate.
func (c Config) date() (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(c.ProjectDate))
}

// FileEntry is a text file placed in the plan, such as a README.
type FileEntry struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Summary is the display record shown next to the tree preview.
type Summary struct {
	ProjectType string   `json:"projectType"`
	WorkType    string   `json:"workType"`
	ProjectName string   `json:"projectName"`
	ProjectDate string   `json:"projectDate"`
	ClientName  string   `json:"clientName,omitempty"`
	Features    []string `json:"features"`
}

// Plan is the generated folder structure. A Plan is never modified after
// Generate returns it.
type Plan struct {
	Paths   []string    `json:"paths"`
	Files   []FileEntry `json:"files"`
	Summary Summary     `json:"summary"`
}
