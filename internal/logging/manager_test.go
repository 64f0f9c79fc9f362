package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerManager_ComponentLevels(t *testing.T) {
	require.NoError(t, InitLogger(t.TempDir()))
	lm := GetLoggerManager()
	t.Cleanup(func() {
		SetConsoleLevel(INFO)
		lm.CloseAll()
		CloseLogger()
	})

	world, err := lm.GetLogger("world")
	require.NoError(t, err)
	again, err := lm.GetLogger("world")
	require.NoError(t, err)
	assert.Same(t, world, again)

	SetConsoleLevel(WARN)
	assert.Equal(t, WARN, world.minConsoleLevel)

	registry := GetRegistryLogger()
	assert.Equal(t, WARN, registry.minConsoleLevel)

	require.NoError(t, lm.CloseAll())
	fresh := GetWorldLogger()
	assert.NotSame(t, world, fresh)
	assert.Equal(t, WARN, fresh.minConsoleLevel)
}
