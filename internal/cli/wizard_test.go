package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDate(t *testing.T) {
	assert.NoError(t, validateDate("2026-04-01"))
	assert.Error(t, validateDate(""))
	assert.Error(t, validateDate("04/01/2026"))
	assert.Error(t, validateDate("2026-13-01"))
}

func TestValidateOptionalDate(t *testing.T) {
	assert.NoError(t, validateOptionalDate(""))
	assert.NoError(t, validateOptionalDate("2026-04-01"))
	assert.Error(t, validateOptionalDate("soon"))
}

func TestRequireNonEmpty(t *testing.T) {
	v := requireNonEmpty("product name")
	assert.NoError(t, v("Atlas"))
	err := v("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product name")
}

func TestConfirmDestructive_NonInteractive(t *testing.T) {
	app := &App{IsInteractive: func() bool { return false }}

	ok, err := confirmDestructive(app, true, "Delete?")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = confirmDestructive(app, false, "Delete?")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}
