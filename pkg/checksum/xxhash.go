// Package checksum provides the content hashes used for idempotency checks:
// a whole-file checksum to detect already-processed inputs and a per-record
// hash over extracted field values.
package checksum

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// FileChecksum hashes the full content of the file at path.
func FileChecksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to hash content of file %s: %w", path, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// RecordHash hashes one record's field values, joined in order.
func RecordHash(values []string) string {
	digest := xxhash.New()
	digest.WriteString(strings.Join(values, ";"))

	return hex.EncodeToString(digest.Sum(nil))
}
