// Package auth covers password hashing, the access-token key, and
// PASETO token issuance.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PASETO v4.local uses a 256-bit symmetric key.
const symmetricKeySize = 32

const keyFileName = "auth.key"

// LoadOrGenerateKey returns the server's token key, reading
// <dataPath>/auth.key if present and minting a fresh key otherwise.
// The file holds the key hex-encoded with 0600 permissions, so tokens
// survive restarts without any key material in the environment.
func LoadOrGenerateKey(dataPath string) ([]byte, error) {
	keyPath := filepath.Join(dataPath, keyFileName)

	//#nosec G304 -- path is built from the configured data directory
	if raw, err := os.ReadFile(keyPath); err == nil {
		key, err := decodeKeyHex(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", keyFileName, err)
		}
		return key, nil
	}

	key := make([]byte, symmetricKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate token key: %w", err)
	}

	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, fmt.Errorf("save token key: %w", err)
	}

	return key, nil
}
