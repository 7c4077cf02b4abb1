package encryption

import (
	"fmt"

	"sbp-go/internal/config"
	"sbp-go/internal/sbp"
)

// NewEncryptorFromConfig creates an Encryptor based on the configuration type.
// It returns nil for type "none", which publishes plain zip archives.
func NewEncryptorFromConfig(cfg config.EncryptionConfig) (sbp.Encryptor, error) {
	switch cfg.Type {
	case "none", "":
		return nil, nil
	case "age":
		if cfg.PublicKeyPath == "" || cfg.PrivateKeyPath == "" {
			return nil, fmt.Errorf("age encryption requires public_key_path and private_key_path")
		}
		return NewAgeEncryptor(cfg), nil
	case "test":
		return NewTestEncryptor(), nil
	default:
		return nil, fmt.Errorf("unknown encryption type: %q", cfg.Type)
	}
}

// NewKeyManager returns an age encryptor for key setup and decryption,
// regardless of whether sealing is switched on in the config.
func NewKeyManager(cfg config.EncryptionConfig) (sbp.Encryptor, error) {
	if cfg.Type == "test" {
		return NewTestEncryptor(), nil
	}
	if cfg.PublicKeyPath == "" || cfg.PrivateKeyPath == "" {
		return nil, fmt.Errorf("encryption config requires public_key_path and private_key_path")
	}
	return NewAgeEncryptor(cfg), nil
}
