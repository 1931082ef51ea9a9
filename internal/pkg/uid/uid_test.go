package uid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID_Generate(t *testing.T) {
	g := NewUUID()

	a, b := g.Generate(), g.Generate()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestSnowflake_Generate(t *testing.T) {
	g, err := NewSnowflake(1)
	require.NoError(t, err)

	seen := make(map[int64]struct{})
	for range 1000 {
		id := g.Generate()
		assert.Positive(t, id)
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestNewSnowflake_Node(t *testing.T) {
	_, err := NewSnowflake(-1)
	assert.NoError(t, err)

	_, err = NewSnowflake(4096)
	assert.ErrorIs(t, err, ErrNodeOutOfRange)
}
