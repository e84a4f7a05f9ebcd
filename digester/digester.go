package digester

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
)

// Sum returns the SHA256 hex digest of content.
func Sum(content []byte) string {
	ha := sha256.Sum256(content)

	return hex.EncodeToString(ha[:])
}

// FileMatches reports whether the file at path exists and holds
// content with the same digest. A missing file is a non-error false.
func FileMatches(path string, content []byte) (bool, error) {
	const errCtx = "checking digest"

	existing, err := os.ReadFile(path) //nolint:gosec // path is caller-provided by design
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	return Sum(existing) == Sum(content), nil
}
