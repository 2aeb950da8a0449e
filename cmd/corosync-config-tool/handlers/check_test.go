package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shikifyj/corosync-config-tool/internal/config"
)

func TestCheck(t *testing.T) {
	orig := portOpen
	t.Cleanup(func() { portOpen = orig })

	var probed []string
	portOpen = func(host string, port int, timeout time.Duration) bool {
		probed = append(probed, host)
		assert.Equal(t, 22, port)
		assert.Equal(t, time.Second, timeout)
		return host != "10.0.0.12"
	}

	env := newTestEnv(t, sampleTopology)
	err := Check(env.Env)
	require.Error(t, err)
	assert.Equal(t, "1 of 2 nodes unreachable", err.Error())
	assert.Equal(t, []string{"10.0.0.11", "10.0.0.12"}, probed)
	assert.Contains(t, env.out.String(), "node-a 10.0.0.11:22 reachable")
	assert.Contains(t, env.out.String(), "node-b 10.0.0.12:22 unreachable")

	portOpen = func(string, int, time.Duration) bool { return true }
	env = newTestEnv(t, sampleTopology)
	assert.NoError(t, Check(env.Env))
}

func TestCheck_NotLoaded(t *testing.T) {
	env := newTestEnv(t, "")
	assert.ErrorIs(t, Check(env.Env), config.ErrNotLoaded)
}
