package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortForIsStableAndInRange(t *testing.T) {
	for _, key := range []string{"", "/a/settings.yaml", "/b/settings.yaml"} {
		port := PortFor(key)
		assert.GreaterOrEqual(t, port, minPort)
		assert.LessOrEqual(t, port, maxPort)
		assert.Equal(t, port, PortFor(key))
	}
}

func TestSingleInstancePerSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	guard, err := AcquireSingleInstance(path)
	if err != nil {
		t.Skipf("port unavailable in this environment: %v", err)
	}
	t.Cleanup(func() { _ = guard.Release() })
	assert.NotEmpty(t, guard.Address())

	_, err = AcquireSingleInstance(path)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	require.NoError(t, guard.Release())

	again, err := AcquireSingleInstance(path)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}
