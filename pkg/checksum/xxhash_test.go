package checksum

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileChecksum(t *testing.T) {
	dir := t.TempDir()

	pathA := filepath.Join(dir, "a.txt")
	assert.NoError(t, os.WriteFile(pathA, []byte("000112345.6\n"), 0644))
	pathB := filepath.Join(dir, "b.txt")
	assert.NoError(t, os.WriteFile(pathB, []byte("000112345.6\n"), 0644))
	pathC := filepath.Join(dir, "c.txt")
	assert.NoError(t, os.WriteFile(pathC, []byte("000254321.0\n"), 0644))

	sumA, err := FileChecksum(pathA)
	assert.NoError(t, err)
	sumB, err := FileChecksum(pathB)
	assert.NoError(t, err)
	sumC, err := FileChecksum(pathC)
	assert.NoError(t, err)

	assert.Equal(t, sumA, sumB, "identical content hashes identically")
	assert.NotEqual(t, sumA, sumC)

	_, err = FileChecksum(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestRecordHash(t *testing.T) {
	a := RecordHash([]string{"0001", "12345."})
	b := RecordHash([]string{"0001", "12345."})
	c := RecordHash([]string{"0002", "12345."})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
