package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/rangequery/config"
)

func TestGenIDUnique(t *testing.T) {
	require.NoError(t, Init(config.SnowflakeConfig{MachineID: 7}))

	seen := make(map[int64]struct{}, 10000)
	for range 10000 {
		id := GenID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
	assert.NotEmpty(t, GenIDString())
}

func TestInitRejectsBadMachineID(t *testing.T) {
	assert.Error(t, Init(config.SnowflakeConfig{MachineID: 4096}))
}
