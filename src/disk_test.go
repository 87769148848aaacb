package src

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIs_disk_space_ok(t *testing.T) {
	ok, free, err := Is_disk_space_ok(t.TempDir(), 0)
	require.NoError(t, err)
	assert.Equal(t, free > 0, ok)

	ok, _, err = Is_disk_space_ok(t.TempDir(), ^uint64(0))
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = Is_disk_space_ok("/nonexistent-dumpreducer-dir", 0)
	assert.Error(t, err)
}
