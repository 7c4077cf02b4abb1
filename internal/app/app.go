package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sbp-go/internal/config"
	"sbp-go/internal/database"
	"sbp-go/internal/destination"
	"sbp-go/internal/encryption"
	"sbp-go/internal/model"
	"sbp-go/internal/sbp"
	"sbp-go/internal/structure"
)

// outputDestination names the destination created for --output.
const outputDestination = "output"

// Options adjust how an SBPApp is wired for a single command.
type Options struct {
	// OutputDir replaces the configured destinations with a local directory.
	OutputDir string
	// Verbose copies every log record to Stderr, not just warnings.
	Verbose bool
	// Stderr receives console log output. Defaults to os.Stderr.
	Stderr io.Writer
	// Clock stamps operations and the log operation ID. Defaults to the
	// wall clock.
	Clock sbp.Clock
}

// SBPApp is the application layer between the CLI and SBPService.
// It constructs all dependencies from config, tracks the running command in
// the operation log and releases resources on Close.
type SBPApp struct {
	cfg       *config.Config
	store     *database.SQLiteStore
	encryptor sbp.Encryptor
	clock     sbp.Clock
	service   *sbp.SBPService
	op        *CommandOperation
	logger    *slogAdapter
	logFile   *os.File
}

// NewSBPApp creates a fully wired SBPApp from the given config.
// operation identifies the CLI command being run (e.g. "create", "clients add").
// The caller must call Close when done.
func NewSBPApp(ctx context.Context, cfg *config.Config, operation string, opts Options) (*SBPApp, error) {
	var (
		dests []sbp.Destination
		err   error
	)
	if opts.OutputDir != "" {
		d, err := destination.NewFilesystemDestination(outputDestination, opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("creating output destination: %w", err)
		}
		dests = []sbp.Destination{d}
	} else {
		dests, err = destination.NewDestinationsFromConfig(ctx, cfg.Destinations)
		if err != nil {
			return nil, fmt.Errorf("creating destinations: %w", err)
		}
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	store, err := database.NewStoreFromConfig(cfg.Clients)
	if err != nil {
		return nil, fmt.Errorf("opening client store: %w", err)
	}
	if err := store.CheckMigrations(); err != nil {
		store.Close()
		return nil, fmt.Errorf("client store schema out of date: %w", err)
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	clock := opts.Clock
	if clock == nil {
		clock = sbp.RealClock{}
	}
	opID := clock.Now().UTC().Format("20060102T150405Z")
	l, logFile, err := newLogger(cfg.LogDir, opID, stderr, opts.Verbose)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: l}

	svc := sbp.NewSBPService(store, dests, enc, logger, clock, sbp.UUIDGenerator{})

	return &SBPApp{
		cfg:       cfg,
		store:     store,
		encryptor: enc,
		clock:     clock,
		service:   svc,
		op:        NewCommandOperation(operation, ""),
		logger:    logger,
		logFile:   logFile,
	}, nil
}

// persistOperation saves the command to the operation log, giving it an ID.
// This should only be called for commands that change something.
func (a *SBPApp) persistOperation(parameters string) error {
	if a.op.Persisted() {
		return nil
	}
	a.op.Parameters = parameters
	dbOp, err := a.store.CreateOperation(a.op.Operation, a.op.Parameters, a.clock.Now())
	if err != nil {
		return fmt.Errorf("recording operation: %w", err)
	}
	a.op.ID = dbOp.ID
	return nil
}

// track marks the operation failed when err is set and returns err.
func (a *SBPApp) track(err error) error {
	if err != nil {
		a.op.Fail()
		a.logger.Error("operation failed", "operation", a.op.Operation, "error", err)
	}
	return err
}

// Config returns the loaded configuration.
func (a *SBPApp) Config() *config.Config {
	return a.cfg
}

// Cameras returns the configured camera catalogue.
func (a *SBPApp) Cameras() []model.Camera {
	return a.cfg.Defaults.Catalogue()
}

// ResolveCameras maps typed camera names onto the catalogue spelling.
func (a *SBPApp) ResolveCameras(assignments []structure.CameraAssignment) []structure.CameraAssignment {
	return sbp.ResolveCameras(assignments, a.Cameras())
}

// Preview validates cfg and returns its folder plan.
func (a *SBPApp) Preview(cfg structure.Config) (*structure.Plan, error) {
	return a.service.Preview(cfg)
}

// Create generates the project structure and publishes its archive.
func (a *SBPApp) Create(ctx context.Context, cfg structure.Config) (*sbp.CreateResult, error) {
	params := FormatParameters(
		"type", string(cfg.ProjectType),
		"work", string(cfg.WorkType),
		"project", structure.FolderSegment(cfg.ProjectName),
		"date", cfg.ProjectDate,
		"client", structure.FolderSegment(cfg.ClientName),
	)
	if err := a.persistOperation(params); err != nil {
		return nil, err
	}
	result, err := a.service.Create(ctx, cfg)
	return result, a.track(err)
}

// CreateAssets publishes the shared Assets & Resources library.
func (a *SBPApp) CreateAssets(ctx context.Context) (*sbp.CreateResult, error) {
	if err := a.persistOperation(""); err != nil {
		return nil, err
	}
	result, err := a.service.CreateAssets(ctx)
	return result, a.track(err)
}

// Destinations returns the names archives are published to.
func (a *SBPApp) Destinations() []string {
	return a.service.Destinations()
}

// ValidateDestinations checks that every destination is reachable.
func (a *SBPApp) ValidateDestinations(ctx context.Context) error {
	return a.service.ValidateDestinations(ctx)
}

func (a *SBPApp) AddClient(name, notes string) (*model.Client, error) {
	if err := a.persistOperation(FormatParameters("name", name)); err != nil {
		return nil, err
	}
	client, err := a.service.AddClient(name, notes)
	return client, a.track(err)
}

func (a *SBPApp) UpdateClientNotes(name, notes string) (*model.Client, error) {
	if err := a.persistOperation(FormatParameters("name", name)); err != nil {
		return nil, err
	}
	client, err := a.service.UpdateClientNotes(name, notes)
	return client, a.track(err)
}

func (a *SBPApp) RemoveClient(name string) error {
	if err := a.persistOperation(FormatParameters("name", name)); err != nil {
		return err
	}
	return a.track(a.service.RemoveClient(name))
}

func (a *SBPApp) GetClient(name string) (*model.Client, error) {
	return a.service.GetClient(name)
}

func (a *SBPApp) ListClients() ([]*model.Client, error) {
	return a.service.ListClients()
}

func (a *SBPApp) SearchClients(query string) ([]*model.Client, error) {
	return a.service.SearchClients(query)
}

func (a *SBPApp) SuggestClients(prefix string, limit int) ([]string, error) {
	return a.service.SuggestClients(prefix, limit)
}

// GetHistory returns the most recent operations.
func (a *SBPApp) GetHistory(limit int) ([]*model.Operation, error) {
	return a.service.GetHistory(limit)
}

// Close finishes the operation record when one was persisted and closes the
// store and log file.
func (a *SBPApp) Close() error {
	var firstErr error

	if a.op.Persisted() {
		if err := a.store.FinishOperation(a.op.ID, a.op.Status, a.clock.Now()); err != nil {
			firstErr = fmt.Errorf("finishing operation: %w", err)
		}
	}

	if err := a.store.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing client store: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}

// InitKeys generates the age key pair used to seal archives. It does not
// need an SBPApp since no store or destination is involved.
func InitKeys(cfg *config.Config, passphrase string) error {
	km, err := encryption.NewKeyManager(cfg.Encryption)
	if err != nil {
		return err
	}
	return km.Setup(passphrase)
}

// KeysConfigured reports whether the key pair exists.
func KeysConfigured(cfg *config.Config) bool {
	km, err := encryption.NewKeyManager(cfg.Encryption)
	if err != nil {
		return false
	}
	return km.IsConfigured()
}

// DecryptArchive unseals the archive at inPath into outPath. The output is
// written to a temp file first and renamed, so a wrong passphrase or
// corrupt input never leaves a partial zip behind.
func DecryptArchive(cfg *config.Config, inPath, outPath, passphrase string) error {
	km, err := encryption.NewKeyManager(cfg.Encryption)
	if err != nil {
		return err
	}
	dc, err := km.Unlock(passphrase)
	if err != nil {
		return err
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening sealed archive: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".sbp-decrypt-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := dc.Decrypt(in, tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("decrypting archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming decrypted archive: %w", err)
	}
	return nil
}

// DecryptedName strips the sealing extension from a sealed archive name,
// falling back to appending ".zip".
func DecryptedName(sealedPath string) string {
	for _, ext := range []string{".age", ".test"} {
		if strings.HasSuffix(sealedPath, ".zip"+ext) {
			return strings.TrimSuffix(sealedPath, ext)
		}
	}
	return sealedPath + ".zip"
}
