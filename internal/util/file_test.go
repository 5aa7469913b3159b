package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteThenReadInt(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "duty")

	// WHEN
	err := WriteIntToFile(42, path)
	assert.NoError(t, err)
	value, err := ReadIntFromFile(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestReadIntFromFileTrimsWhitespace(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "raw")
	assert.NoError(t, os.WriteFile(path, []byte(" 1234\n"), 0644))

	// WHEN
	value, err := ReadIntFromFile(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1234, value)
}

func TestReadIntFromEmptyFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "empty")
	assert.NoError(t, os.WriteFile(path, []byte(""), 0644))

	// WHEN
	_, err := ReadIntFromFile(path)

	// THEN
	assert.Error(t, err)
}
