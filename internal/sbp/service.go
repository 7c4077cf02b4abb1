package sbp

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"sbp-go/internal/archive"
	"sbp-go/internal/structure"
)

var (
	// ErrClientExists is returned when adding a client whose name is taken.
	ErrClientExists = errors.New("client already exists")
	// ErrClientNotFound is returned for operations on an unknown client.
	ErrClientNotFound = errors.New("client not found")
	// ErrNoDestinations is returned by Publish when nothing can receive the archive.
	ErrNoDestinations = errors.New("no destinations configured")
)

// SBPService is the orchestration layer that turns project configs into
// folder plans and archives, publishes archives to destinations and keeps
// the client list current.
type SBPService struct {
	clients      ClientStore
	destinations []Destination
	encryptor    Encryptor
	logger       Logger
	clock        Clock
	idgen        IDGenerator
}

// NewSBPService creates a new SBPService with the provided dependencies.
// encryptor may be nil, in which case archives are published as plain zip files.
func NewSBPService(clients ClientStore, destinations []Destination, encryptor Encryptor, logger Logger, clock Clock, idgen IDGenerator) *SBPService {
	return &SBPService{
		clients:      clients,
		destinations: destinations,
		encryptor:    encryptor,
		logger:       logger,
		clock:        clock,
		idgen:        idgen,
	}
}

// Package is a finished archive ready to be published.
type Package struct {
	Name    string // File or object name, e.g. "Sunset-Shoot-structure.zip"
	Data    []byte
	Entries int  // Number of zip entries
	Sealed  bool // Data is encrypted
}

// CreateResult describes what a create run produced.
type CreateResult struct {
	Plan         *structure.Plan
	Package      *Package
	Destinations []string
	ClientAdded  bool // the client did not exist and was added
}

// Preview validates the config and returns the folder plan without packaging it.
func (s *SBPService) Preview(cfg structure.Config) (*structure.Plan, error) {
	plan, err := structure.Generate(cfg)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("structure generated", "project", plan.Summary.ProjectName, "paths", len(plan.Paths), "files", len(plan.Files))
	return plan, nil
}

// Package encodes the plan as a zip archive and seals it when an encryptor
// is configured.
func (s *SBPService) Package(ctx context.Context, plan *structure.Plan) (*Package, error) {
	entries := plan.ArchiveEntries()

	var buf bytes.Buffer
	if err := archive.Write(ctx, &buf, entries, s.clock.Now()); err != nil {
		return nil, fmt.Errorf("writing archive: %w", err)
	}

	pkg := &Package{
		Name:    structure.ArchiveName(plan.Summary.ProjectName),
		Entries: len(entries),
	}

	if s.encryptor == nil {
		pkg.Data = buf.Bytes()
		return pkg, nil
	}

	if !s.encryptor.IsConfigured() {
		return nil, fmt.Errorf("encryption keys are not configured: run `sbp config keys init`")
	}

	var sealed bytes.Buffer
	if err := s.encryptor.Encrypt(&buf, &sealed); err != nil {
		return nil, fmt.Errorf("encrypting archive: %w", err)
	}
	pkg.Name += s.encryptor.Extension()
	pkg.Data = sealed.Bytes()
	pkg.Sealed = true

	s.logger.Debug("archive sealed", "name", pkg.Name, "size", len(pkg.Data))
	return pkg, nil
}

// Publish writes the package to every configured destination concurrently.
// The first failure cancels the remaining uploads and is returned.
func (s *SBPService) Publish(ctx context.Context, pkg *Package) error {
	if len(s.destinations) == 0 {
		return ErrNoDestinations
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, d := range s.destinations {
		g.Go(func() error {
			if err := d.Put(ctx, pkg.Name, bytes.NewReader(pkg.Data), int64(len(pkg.Data))); err != nil {
				return fmt.Errorf("publishing to %s: %w", d.Name(), err)
			}
			s.logger.Info("archive published", "destination", d.Name(), "name", pkg.Name, "size", len(pkg.Data))
			return nil
		})
	}

	return g.Wait()
}

// Destinations returns the names of the configured destinations.
func (s *SBPService) Destinations() []string {
	names := make([]string, len(s.destinations))
	for i, d := range s.destinations {
		names[i] = d.Name()
	}
	return names
}

// ValidateDestinations checks every destination and returns the first error.
func (s *SBPService) ValidateDestinations(ctx context.Context) error {
	for _, d := range s.destinations {
		if err := d.ValidateSetup(ctx); err != nil {
			return fmt.Errorf("destination %s: %w", d.Name(), err)
		}
	}
	return nil
}

// Create generates, packages and publishes a project structure. For client
// work the client is added if needed and the project folder is recorded;
// failing to record it does not fail the create.
func (s *SBPService) Create(ctx context.Context, cfg structure.Config) (*CreateResult, error) {
	plan, err := s.Preview(cfg)
	if err != nil {
		return nil, err
	}

	result, err := s.publishPlan(ctx, plan)
	if err != nil {
		return nil, err
	}

	// The archive is already published, so a failed client update only warns.
	if cfg.WorkType == structure.WorkClient && s.clients != nil {
		client := structure.FolderSegment(cfg.ClientName)
		added, err := s.recordClientProject(client, cfg.ProjectFolder())
		if err != nil {
			s.logger.Warn("project published but not recorded for client", "client", client, "error", err)
		} else {
			result.ClientAdded = added
		}
	}

	s.logger.Info("project created", "project", plan.Summary.ProjectName, "archive", result.Package.Name)
	return result, nil
}

// CreateAssets packages and publishes the shared Assets & Resources library.
func (s *SBPService) CreateAssets(ctx context.Context) (*CreateResult, error) {
	result, err := s.publishPlan(ctx, structure.GenerateAssets())
	if err != nil {
		return nil, err
	}
	s.logger.Info("assets library created", "archive", result.Package.Name)
	return result, nil
}

func (s *SBPService) publishPlan(ctx context.Context, plan *structure.Plan) (*CreateResult, error) {
	pkg, err := s.Package(ctx, plan)
	if err != nil {
		return nil, err
	}

	if err := s.Publish(ctx, pkg); err != nil {
		return nil, err
	}

	return &CreateResult{
		Plan:         plan,
		Package:      pkg,
		Destinations: s.Destinations(),
	}, nil
}

// recordClientProject adds the client when missing and records the project.
// It reports whether the client was added.
func (s *SBPService) recordClientProject(clientName, project string) (bool, error) {
	client, err := s.clients.FindClientByName(clientName)
	if err != nil {
		return false, fmt.Errorf("finding client: %w", err)
	}

	added := false
	if client == nil {
		client, err = s.AddClient(clientName, "")
		if err != nil {
			return false, err
		}
		added = true
	}

	if _, err := s.clients.AddClientProject(client.ID, project, s.clock.Now()); err != nil {
		return false, fmt.Errorf("recording project for %s: %w", clientName, err)
	}
	return added, nil
}
