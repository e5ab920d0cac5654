package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumFlag(t *testing.T) {
	f := newEnumFlag("note", "progress", "note")
	assert.Equal(t, "note", f.String())

	require.NoError(t, f.Set("progress"))
	assert.Equal(t, "progress", f.String())

	err := f.Set("gossip")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "progress|note")
	assert.Equal(t, "progress", f.String(), "invalid Set leaves the value alone")
}
