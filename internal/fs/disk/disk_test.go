package disk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsedSpace(t *testing.T) {
	used, percent := usedSpace(100000000, 40000000)
	assert.Equal(t, uint64(60000000), used)
	assert.InDelta(t, 60.0, percent, 0.001)

	used, percent = usedSpace(0, 0)
	assert.Equal(t, uint64(0), used)
	assert.Equal(t, 0.0, percent)
}

func TestUsageLiveSnapshot(t *testing.T) {
	u, err := Usage(t.TempDir())
	require.NoError(t, err)

	assert.Greater(t, u.TotalBytes, uint64(0))
	assert.Equal(t, u.TotalBytes-u.FreeBytes, u.UsedBytes)
	assert.GreaterOrEqual(t, u.UsagePercent, 0.0)
	assert.LessOrEqual(t, u.UsagePercent, 100.0)
	assert.NotEmpty(t, u.Filesystem)
	assert.NotEmpty(t, u.TotalFormatted)
}

func TestUsageMissingPath(t *testing.T) {
	_, err := Usage("/definitely/not/a/mountpoint")
	assert.Error(t, err)
}
