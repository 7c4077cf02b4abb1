package testutil

import (
	"sbp-go/internal/encryption"
	"sbp-go/internal/sbp"
)

// NewTestEncryptor creates a new test encryptor for testing.
func NewTestEncryptor() sbp.Encryptor {
	return encryption.NewTestEncryptor()
}
