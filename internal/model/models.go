package model

import "time"

// Client is a customer that commissions client work.
type Client struct {
	ID        string    // UUID
	Name      string    // Unique display name, also the folder name under Client Work
	Notes     string
	CreatedAt time.Time
	Projects  []string // Project folder names, in the order they were recorded
}

// HasProject reports whether the project folder is already recorded.
func (c *Client) HasProject(project string) bool {
	for _, p := range c.Projects {
		if p == project {
			return true
		}
	}
	return false
}

// Operation records a CLI command that changed stored state or produced an
// archive.
type Operation struct {
	ID         int64 // Auto-increment
	Operation  string
	Parameters string
	StartedAt  time.Time
	FinishedAt *time.Time // nil while running or if the process died
	Status     string     // "running", "success" or "error"
}

// Duration returns how long the operation took, or zero if it never finished.
func (o *Operation) Duration() time.Duration {
	if o.FinishedAt == nil {
		return 0
	}
	return o.FinishedAt.Sub(o.StartedAt)
}

// Camera is an entry in the default camera catalogue.
type Camera struct {
	Name  string
	Brand string
}
