package prefab

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCompressUUID(t *testing.T) {
	u := uuid.MustParse("fc991dd7-0033-4b80-9d41-c8a86a702e59")
	require.Equal(t, "fcmR3XADNLgJ1ByKhqcC5Z", CompressUUID(u))
}

func TestUUIDSource(t *testing.T) {
	src := UUIDSource{}
	seen := make(map[string]struct{})
	for range 100 {
		id := src.NextID()
		require.Len(t, id, 22)
		require.Regexp(t, `^[0-9a-f]{2}[A-Za-z0-9+/]{20}$`, id)
		seen[id] = struct{}{}
	}
	require.Len(t, seen, 100)
}
