package kernel_test

import (
	"testing"

	"storefront/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	a := kernel.NewUUID()
	b := kernel.NewUUID()

	assert.False(t, a.IsZero())
	assert.False(t, a.IsEqual(b))
	assert.Len(t, a.String(), 36)
}

func TestUUIDFromString(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		src := kernel.NewUUID()

		parsed, err := kernel.UUIDFromString(src.String())

		require.NoError(t, err)
		assert.True(t, parsed.IsEqual(src))
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})
}
