package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		BaseDir: "/home/user/.local/share/sbp",
		LogDir:  "/home/user/.local/share/sbp/log",
		Clients: ClientsConfig{Type: "sqlite", DataDir: "/home/user/.local/share/sbp/db"},
		Destinations: []DestinationConfig{
			{Type: "filesystem", Name: "local", FSRoot: "/exports"},
			{Type: "s3", Name: "archive", S3Bucket: "shoots", S3Prefix: "structures/", S3Region: "eu-west-1"},
			{Type: "minio", Name: "studio-nas", MinioEndpoint: "nas.local:9000", MinioBucket: "projects", MinioUseSSL: true},
		},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  "/home/user/.local/share/sbp/keys/sbp.pub",
			PrivateKeyPath: "/home/user/.local/share/sbp/keys/sbp.key",
		},
		Defaults: DefaultsConfig{
			IncludeProxies: true,
			Cameras:        []CameraConfig{{Name: "Lumix", Brand: "Panasonic"}},
		},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.Clients != original.Clients {
		t.Errorf("Clients = %+v, want %+v", got.Clients, original.Clients)
	}
	if len(got.Destinations) != 3 {
		t.Fatalf("len(Destinations) = %d, want 3", len(got.Destinations))
	}
	for i := range original.Destinations {
		if got.Destinations[i] != original.Destinations[i] {
			t.Errorf("Destinations[%d] = %+v, want %+v", i, got.Destinations[i], original.Destinations[i])
		}
	}
	if got.Encryption != original.Encryption {
		t.Errorf("Encryption = %+v, want %+v", got.Encryption, original.Encryption)
	}
	if !got.Defaults.IncludeProxies || got.Defaults.IncludeCaptureOne {
		t.Errorf("Defaults = %+v", got.Defaults)
	}
	if len(got.Defaults.Cameras) != 1 || got.Defaults.Cameras[0].Brand != "Panasonic" {
		t.Errorf("Defaults.Cameras = %+v", got.Defaults.Cameras)
	}
}

func TestManager_Read_TOML(t *testing.T) {
	doc := `
base_dir = "/data/sbp"

[clients]
type = "memory"

[[destinations]]
type = "memory"
name = "scratch"

[encryption]
type = "test"

[defaults]
include_capture_one = true

[[defaults.cameras]]
name = "Sony"
brand = "Sony"
`
	got, err := (&Manager{}).Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Clients.Type != "memory" || got.Encryption.Type != "test" {
		t.Errorf("config = %+v", got)
	}
	if len(got.Destinations) != 1 || got.Destinations[0].Name != "scratch" {
		t.Errorf("Destinations = %+v", got.Destinations)
	}
	if !got.Defaults.IncludeCaptureOne {
		t.Error("Defaults.IncludeCaptureOne = false, want true")
	}
	if cat := got.Defaults.Catalogue(); len(cat) != 1 || cat[0].Name != "Sony" {
		t.Errorf("Catalogue() = %+v", cat)
	}
}

func TestManager_Read_Invalid(t *testing.T) {
	if _, err := (&Manager{}).Read(strings.NewReader("base_dir = ")); err == nil {
		t.Error("Read() expected error for malformed TOML")
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/sbp")

	if cfg.BaseDir != "/data/sbp" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/sbp")
	}
	if cfg.LogDir != "/data/sbp/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/sbp/log")
	}
	if cfg.Clients.Type != "sqlite" || cfg.Clients.DataDir != "/data/sbp/db" {
		t.Errorf("Clients = %+v", cfg.Clients)
	}
	if len(cfg.Destinations) != 1 || cfg.Destinations[0].Type != "filesystem" || cfg.Destinations[0].FSRoot != "." {
		t.Errorf("Destinations = %+v", cfg.Destinations)
	}
	if cfg.Encryption.Type != "none" {
		t.Errorf("Encryption.Type = %q, want none", cfg.Encryption.Type)
	}
	if cfg.Encryption.PublicKeyPath != "/data/sbp/keys/sbp.pub" {
		t.Errorf("Encryption.PublicKeyPath = %q", cfg.Encryption.PublicKeyPath)
	}
	if cfg.Encryption.PrivateKeyPath != "/data/sbp/keys/sbp.key" {
		t.Errorf("Encryption.PrivateKeyPath = %q", cfg.Encryption.PrivateKeyPath)
	}
	if len(cfg.Defaults.Cameras) != 6 {
		t.Errorf("len(Defaults.Cameras) = %d, want 6", len(cfg.Defaults.Cameras))
	}

	// The catalogue must not alias the package default.
	cfg.Defaults.Cameras[0].Name = "changed"
	if NewConfig("/x").Defaults.Cameras[0].Name != "Lumix" {
		t.Error("NewConfig() shares the default camera slice")
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "conf", "sbp.toml")

		if err := Init(path, NewConfig(dir)); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "sbp.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}
		if err := Init(path, cfg); err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "sbp.toml")
		cfg := NewConfig(dir)
		cfg.Clients = ClientsConfig{Type: "memory"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.Clients.Type != "memory" {
			t.Errorf("Clients.Type = %q, want memory", got.Clients.Type)
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		if _, err := ReadFromFile("/nonexistent/path/sbp.toml"); err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("falls back to defaults", func(t *testing.T) {
		dir := t.TempDir()
		cfg, found, err := Load(filepath.Join(dir, "missing.toml"), dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if found {
			t.Error("Load() found = true for missing file")
		}
		if cfg.BaseDir != dir {
			t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, dir)
		}
	})

	t.Run("reads existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "sbp.toml")
		want := NewConfig("/elsewhere")
		if err := Init(path, want); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		cfg, found, err := Load(path, dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !found || cfg.BaseDir != "/elsewhere" {
			t.Errorf("Load() = %+v, found=%v", cfg, found)
		}
	})

	t.Run("reports malformed file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "sbp.toml")
		os.WriteFile(path, []byte("[[["), 0644)

		if _, _, err := Load(path, dir); err == nil {
			t.Error("Load() expected error for malformed file")
		}
	})
}
