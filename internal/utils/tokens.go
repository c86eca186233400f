package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewResetCode returns a random hex string of nBytes entropy (256 бит по умолчанию).
func NewResetCode(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewUsername generates the auto-assigned username for a fresh registration,
// e.g. "user-1b4e28ba2fa1".
func NewUsername() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "user-" + id[:12]
}
