package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"sbp-go/internal/model"
)

// Config represents the main configuration for sbp.
type Config struct {
	BaseDir      string              `toml:"base_dir"`
	LogDir       string              `toml:"log_dir"`
	Clients      ClientsConfig       `toml:"clients"`
	Destinations []DestinationConfig `toml:"destinations"`
	Encryption   EncryptionConfig    `toml:"encryption"`
	Defaults     DefaultsConfig      `toml:"defaults"`
}

// ClientsConfig selects where clients and the operation log are stored.
type ClientsConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// DestinationConfig represents a place archives are published to.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DestinationConfig struct {
	Type string `toml:"type"` // "filesystem", "memory", "s3" or "minio"
	Name string `toml:"name"`

	// Filesystem-specific fields (only used when Type == "filesystem")
	FSRoot string `toml:"fs_root,omitempty"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket   string `toml:"s3_bucket,omitempty"`
	S3Prefix   string `toml:"s3_prefix,omitempty"`
	S3Region   string `toml:"s3_region,omitempty"`
	S3Endpoint string `toml:"s3_endpoint,omitempty"` // S3-compatible services

	// MinIO-specific fields (only used when Type == "minio").
	// Keys come from SBP_MINIO_ACCESS_KEY and SBP_MINIO_SECRET_KEY.
	MinioEndpoint string `toml:"minio_endpoint,omitempty"`
	MinioBucket   string `toml:"minio_bucket,omitempty"`
	MinioRegion   string `toml:"minio_region,omitempty"`
	MinioUseSSL   bool   `toml:"minio_use_ssl,omitempty"`
}

// EncryptionConfig holds the archive encryption mode and age key paths.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "none" (default), "age" or "test"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// DefaultsConfig holds flag defaults for new projects.
type DefaultsConfig struct {
	IncludeCaptureOne bool           `toml:"include_capture_one"`
	IncludeProxies    bool           `toml:"include_proxies"`
	Cameras           []CameraConfig `toml:"cameras"`
}

// CameraConfig is one entry of the camera catalogue.
type CameraConfig struct {
	Name  string `toml:"name"`
	Brand string `toml:"brand,omitempty"`
}

// Catalogue returns the configured cameras as model values.
func (d DefaultsConfig) Catalogue() []model.Camera {
	cameras := make([]model.Camera, len(d.Cameras))
	for i, c := range d.Cameras {
		cameras[i] = model.Camera{Name: c.Name, Brand: c.Brand}
	}
	return cameras
}

// defaultCameras is the catalogue written by `sbp config init`.
var defaultCameras = []CameraConfig{
	{Name: "Lumix", Brand: "Panasonic"},
	{Name: "DJI POCKET", Brand: "DJI"},
	{Name: "Fujifilm", Brand: "Fujifilm"},
	{Name: "Canon", Brand: "Canon"},
	{Name: "Sony", Brand: "Sony"},
	{Name: "Drone", Brand: "DJI"},
}

// NewConfig creates a Config rooted at baseDir with default paths and a
// single filesystem destination in the current directory.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Clients: ClientsConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
		Destinations: []DestinationConfig{
			{Type: "filesystem", Name: "local", FSRoot: "."},
		},
		Encryption: EncryptionConfig{
			Type:           "none",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "sbp.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "sbp.key"),
		},
		Defaults: DefaultsConfig{
			Cameras: append([]CameraConfig(nil), defaultCameras...),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads the config at path, falling back to NewConfig(baseDir) when the
// file does not exist. The second result reports whether a file was read.
func Load(path, baseDir string) (*Config, bool, error) {
	cfg, err := ReadFromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewConfig(baseDir), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init writes cfg to a new config file. It refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
