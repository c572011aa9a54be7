package platform

import (
	"testing"
	"time"

	"lookaway/internal/core/cycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleInstance(t *testing.T) {
	name := "lookaway-test-" + t.Name()
	guard, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	assert.NotEmpty(t, guard.Address())

	_, err = AcquireSingleInstance(name)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
	require.NoError(t, guard.Release())

	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestLockPortRange(t *testing.T) {
	for _, name := range []string{"", "lookaway", "LookAway", "a much longer application name"} {
		port := lockPort(name)
		assert.GreaterOrEqual(t, port, minLockPort)
		assert.LessOrEqual(t, port, maxLockPort)
	}
	assert.Equal(t, lockPort("lookaway"), lockPort("lookaway"))
}

func TestParseIdleMillis(t *testing.T) {
	idle, err := parseIdleMillis([]byte("1234\n"))
	require.NoError(t, err)
	assert.Equal(t, 1234*time.Millisecond, idle)

	idle, err = parseIdleMillis([]byte("-5"))
	require.NoError(t, err)
	assert.Zero(t, idle)

	_, err = parseIdleMillis([]byte("idle"))
	assert.Error(t, err)
}

func TestUnsupportedIdleProvider(t *testing.T) {
	_, err := unsupportedIdleProvider{}.IdleDuration()
	assert.ErrorIs(t, err, cycle.ErrIdleUnsupported)
	assert.NotNil(t, NewIdleProvider())
}
